package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/integrator"
	"github.com/df07/go-sah-raytracer/pkg/job"
	"github.com/df07/go-sah-raytracer/pkg/material"
	"github.com/df07/go-sah-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo describes the material and surface colour of a hit
func extractMaterialInfo(mat *material.Material, colour core.Vec3) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"colour": [3]float32{colour.X, colour.Y, colour.Z},
	}
	if mat == nil {
		return "none", properties
	}

	if mat.Kind == material.KindMetal {
		properties["fuzz"] = mat.Fuzz
	}
	return mat.Kind.String(), properties
}

// handleInspect casts a single ray through the centre of pixel (x, y) and
// reports what it hits. y counts down from the top of the image.
func (s *Server) handleInspect(c echo.Context) error {
	query := c.QueryParams()

	sc, err := job.Resolve(job.Options{Scene: query.Get("scene"), ScenesDir: s.cfg.ScenesDir})
	if errors.Is(err, scene.ErrUnknownScene) {
		return jsonError(c, http.StatusNotFound, err)
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	width, err := parseIntParam(query, "width", sc.SamplingConfig.Width, 1, maxImageSide)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	height, err := parseIntParam(query, "height", sc.SamplingConfig.Height, 1, maxImageSide)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	x, err := parseIntParam(query, "x", width/2, 0, width-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	y, err := parseIntParam(query, "y", height/2, 0, height-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	world, _, err := sc.World(sc.UseBVH)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	camera := sc.CameraConfig.NewCamera(width, height)
	u := (float32(x) + 0.5) / float32(width)
	v := (float32(height-1-y) + 0.5) / float32(height)
	ray := camera.GetRay(u, v)

	limits := integrator.DefaultConfig()
	hit, ok := world.Hit(ray, limits.TMin, limits.TMax)
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, properties := extractMaterialInfo(hit.Material, hit.Colour)
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float32{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float32{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		Properties:   properties,
	})
}
