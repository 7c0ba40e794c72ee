package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"

	"github.com/df07/go-sah-raytracer/pkg/job"
	"github.com/df07/go-sah-raytracer/pkg/output"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFlags are the options accepted by the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "default",
		Usage: "built-in scene name or path to a JSON scene file",
	},
	cli.StringFlag{
		Name:  "mesh",
		Usage: "OBJ, glTF or PLY model to add to the default scene",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (0 keeps the scene setting)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (0 keeps the scene setting)",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel (0 keeps the scene setting)",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Usage: "maximum number of bounces (0 keeps the scene setting)",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (0 uses RAYTRACER_WORKERS or one per CPU)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 42,
		Usage: "base random seed",
	},
	cli.BoolFlag{
		Name:  "bvh",
		Usage: "trace through the BVH (--bvh=false forces the linear scene)",
	},
	cli.IntFlag{
		Name:  "frames",
		Value: 1,
		Usage: "number of frames, moving the camera between frames",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output directory (defaults to RAYTRACER_OUTPUT_DIR)",
	},
	cli.UintFlag{
		Name:  "thumbnail",
		Usage: "also write a preview of at most this many pixels per side",
	},
	cli.BoolFlag{
		Name:  "upload",
		Usage: "upload frames to the configured S3 bucket",
	},
	cli.BoolFlag{
		Name:  "normals",
		Usage: "shade by surface normal with one sample per pixel",
	},
}

// Render one or more frames of a scene.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	opts := job.Options{
		Scene:           ctx.String("scene"),
		MeshPath:        ctx.String("mesh"),
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("max-depth"),
		Workers:         ctx.Int("workers"),
		Seed:            ctx.Int64("seed"),
		Frames:          ctx.Int("frames"),
		Normals:         ctx.Bool("normals"),
	}
	if opts.Workers == 0 {
		opts.Workers = cfg.Workers
	}
	if ctx.IsSet("bvh") {
		useBVH := ctx.Bool("bvh")
		opts.BVH = &useBVH
	}

	outDir := ctx.String("out")
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	var uploader *output.S3Uploader
	if ctx.Bool("upload") {
		if uploader, err = output.NewS3Uploader(cfg.S3); err != nil {
			return err
		}
	}
	thumbSize := ctx.Uint("thumbnail")

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var frameStats []renderer.RenderStats
	result, err := job.Run(runCtx, opts, func(i int, frame *renderer.Frame, stats renderer.RenderStats) error {
		frameStats = append(frameStats, stats)
		return saveFrame(runCtx, outDir, i, frame, thumbSize, uploader)
	})
	if err != nil {
		return err
	}

	displayRenderStats(result, frameStats)
	return nil
}

// saveFrame writes frame i to outDir, plus the optional thumbnail and upload
func saveFrame(ctx context.Context, outDir string, i int, frame *renderer.Frame, thumbSize uint, uploader *output.S3Uploader) error {
	name := output.FrameFilename(i)
	if err := output.WritePNG(filepath.Join(outDir, name), frame); err != nil {
		return err
	}
	logger.Noticef("wrote %s", filepath.Join(outDir, name))

	if thumbSize > 0 {
		thumbPath := filepath.Join(outDir, strings.TrimSuffix(name, ".png")+"_thumb.png")
		file, err := os.Create(thumbPath)
		if err != nil {
			return err
		}
		if err := output.EncodeThumbnail(file, output.ToImage(frame), thumbSize); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
	}

	if uploader != nil {
		data, err := output.PNGBytes(frame)
		if err != nil {
			return err
		}
		key := path.Join(filepath.Base(filepath.Clean(outDir)), name)
		if err := uploader.UploadPNG(ctx, key, data); err != nil {
			return err
		}
	}
	return nil
}

func displayRenderStats(result job.Result, frames []renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Resolution", "Pixels", "SPP", "Samples", "Workers", "Render time", "Samples/sec"})
	for _, stat := range frames {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Frame),
			fmt.Sprintf("%dx%d", stat.Width, stat.Height),
			fmt.Sprintf("%d", stat.TotalPixels()),
			fmt.Sprintf("%d", stat.SamplesPerPixel),
			fmt.Sprintf("%d", stat.TotalSamples),
			fmt.Sprintf("%d", stat.Workers),
			stat.Duration.String(),
			fmt.Sprintf("%.0f", stat.SamplesPerSecond()),
		})
	}
	table.SetFooter([]string{"", "", "", "", fmt.Sprintf("%d", result.Total.TotalSamples), "TOTAL", result.Total.Duration.String(), fmt.Sprintf("%.0f", result.Total.SamplesPerSecond())})
	table.Render()

	world := "linear scene"
	if bvh := result.Total.BVH; bvh != nil {
		world = fmt.Sprintf("BVH (%d nodes, %d leaves, depth %d, built in %s)", bvh.Nodes, bvh.Leaves, bvh.MaxDepth, bvh.BuildTime)
	}
	logger.Noticef("scene %q: %d primitives via %s\n%s", result.Scene, result.Total.Primitives, world, buf.String())
}
