package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/df07/go-sah-raytracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// Display host information relevant to render performance.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})

	table.Append([]string{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)})

	cpuInfo, err := cpu.Info()
	if err != nil || len(cpuInfo) == 0 {
		logger.Warningf("CPU information unavailable: %v", err)
	} else {
		table.Append([]string{"CPU", cpuInfo[0].ModelName})
		table.Append([]string{"Clock", fmt.Sprintf("%.2f GHz", cpuInfo[0].Mhz/1000)})
	}

	if physical, err := cpu.Counts(false); err == nil {
		table.Append([]string{"Physical cores", fmt.Sprintf("%d", physical)})
	}
	table.Append([]string{"Render workers", fmt.Sprintf("%d", renderer.DefaultWorkers())})

	if memInfo, err := mem.VirtualMemory(); err == nil {
		table.Append([]string{"Memory", fmt.Sprintf("%.1f GiB total, %.1f GiB available",
			float64(memInfo.Total)/(1<<30), float64(memInfo.Available)/(1<<30))})
	}

	table.Render()
	logger.Noticef("host information\n%s", buf.String())
	return nil
}
