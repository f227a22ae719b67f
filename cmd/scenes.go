package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-ray-optics/pkg/scene"
)

// ListScenes prints the built-in scenes and the scene files found on disk
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(scenesDir(ctx))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Mode", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.DisplayName, group.Name, info.Mode, info.Description})
		}
	}
	table.Render()

	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
