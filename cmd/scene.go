package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/diorama/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)
	configureS3()

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("scene information\n%s", sceneInfo(sc))
	return nil
}

// Render tables with the scene materials and a scene summary.
func sceneInfo(sc *scene.Scene) string {
	boxesPerMaterial := make(map[*scene.Material]int, len(sc.Materials))
	for _, box := range sc.Boxes {
		boxesPerMaterial[box.Material]++
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Material", "Base color", "Specular", "Albedo", "Emissive", "Boxes"})
	for _, mat := range sc.Materials {
		name := mat.Name
		if name == "" {
			name = "(default)"
		}

		baseColor := scene.DefaultBaseColor.String()
		switch {
		case mat.Texture != nil:
			baseColor = fmt.Sprintf("texture %dx%d", mat.Texture.Width, mat.Texture.Height)
		case mat.Diffuse != nil:
			baseColor = mat.Diffuse.String()
		}

		emissive := "-"
		if mat.IsEmissive() {
			emissive = fmt.Sprintf("%s x %.2f", mat.Emissive.String(), mat.EmissionIntensity)
		}

		table.Append([]string{
			name,
			baseColor,
			fmt.Sprintf("%.1f", mat.Specular),
			fmt.Sprintf("%.2f / %.2f", mat.Albedo[0], mat.Albedo[1]),
			emissive,
			fmt.Sprintf("%d", boxesPerMaterial[mat]),
		})
	}
	table.Render()

	bbox := sc.BBox()
	summary := tablewriter.NewWriter(&buf)
	summary.SetAutoFormatHeaders(false)
	summary.SetAutoWrapText(false)
	summary.SetHeader([]string{"Scene", "Value"})
	summary.Append([]string{"Boxes", fmt.Sprintf("%d", len(sc.Boxes))})
	summary.Append([]string{"Materials", fmt.Sprintf("%d (%d textured, %d emissive)", len(sc.Materials), sc.TexturedMaterials(), sc.EmissiveMaterials())})
	summary.Append([]string{"Bounds", fmt.Sprintf("%v - %v", bbox[0], bbox[1])})
	summary.Append([]string{"Camera", fmt.Sprintf("eye %v, look at %v", sc.Camera.Eye, sc.Camera.Center)})
	summary.Append([]string{"Light", fmt.Sprintf("%v, %s x %.2f", sc.Light.Position, sc.Light.Color.String(), sc.Light.Intensity)})
	summary.Append([]string{"Background", sc.BgColor.String()})
	summary.Render()

	return buf.String()
}
