package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	atlas "github.com/blacksmith/atlas"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "asset commands",
}

var edgeCmd = &cobra.Command{
	Use:   "edge",
	Short: "edge commands",
}

func init() {
	rootCmd.AddCommand(assetCmd)
	assetCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	assetCmd.AddCommand(createAssetCmd())
	assetCmd.AddCommand(getAssetCmd())
	assetCmd.AddCommand(listAssetCmd())
	assetCmd.AddCommand(trashAssetCmd())
	assetCmd.AddCommand(restoreAssetCmd())
	assetCmd.AddCommand(openAssetCmd())
	assetCmd.AddCommand(bumpAssetCmd())

	rootCmd.AddCommand(edgeCmd)
	edgeCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	edgeCmd.AddCommand(addEdgeCmd())
	edgeCmd.AddCommand(listEdgesCmd())
	edgeCmd.AddCommand(removeEdgeCmd())
}

func checkMissingFlags(cmd *cobra.Command, required []string) bool {
	missing := make([]string, 0)
	for _, name := range required {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		color.Red("missing: --%s", strings.Join(missing, ", --"))
		return true
	}

	return false
}

func createAssetCmd() *cobra.Command {
	var name string
	var category string
	var filePath string
	var format string
	var tags []string
	var projectID string
	var creatorID string

	var required = []string{"name", "category", "path"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create an asset",
		Example: "atlas asset create -n pine_tree_01 -c environments -f usd --path /library/env/pine_tree_01",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			asset, err := apiClient().CreateAsset(context.Background(), &atlas.Asset{
				Name:      name,
				Category:  category,
				FilePath:  filePath,
				Format:    format,
				Tags:      tags,
				ProjectID: projectID,
				CreatorID: creatorID,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("asset created: %s", asset.ID)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "asset name")
	command.Flags().StringVarP(&category, "category", "c", "", "asset category")
	command.Flags().StringVar(&filePath, "path", "", "asset folder path")
	command.Flags().StringVarP(&format, "format", "f", "", "asset format")
	command.Flags().StringSliceVarP(&tags, "tag", "t", nil, "asset tags")
	command.Flags().StringVarP(&projectID, "project-id", "p", "", "project id")
	command.Flags().StringVarP(&creatorID, "creator-id", "u", "", "creator user id")
	bindServerFlag(command)

	return command
}

func getAssetCmd() *cobra.Command {
	var assetID string

	command := &cobra.Command{
		Use:   "get",
		Short: "get an asset",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"asset-id"}) {
				return
			}

			asset, err := apiClient().GetAsset(context.Background(), assetID)
			if err != nil {
				logrus.Error(err)
				return
			}

			printAssetTable([]atlas.Asset{*asset})
		},
	}

	command.Flags().StringVarP(&assetID, "asset-id", "a", "", "asset id")
	bindServerFlag(command)

	return command
}

func listAssetCmd() *cobra.Command {
	var query string
	var category string
	var tags []string
	var projectID string
	var status string
	var sort string

	command := &cobra.Command{
		Use:   "list",
		Short: "list assets",
		Run: func(cmd *cobra.Command, args []string) {
			assets, total, err := apiClient().ListAssets(context.Background(), atlas.ListAssetsOptions{
				Query:    query,
				Category: category,
				Tags:     tags,
				Project:  projectID,
				Status:   status,
				Sort:     sort,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printAssetTable(assets)
			fmt.Printf("total: %d\n", total)
		},
	}

	command.Flags().StringVarP(&query, "query", "q", "", "free text search")
	command.Flags().StringVarP(&category, "category", "c", "", "asset category")
	command.Flags().StringSliceVarP(&tags, "tag", "t", nil, "filter tags, all must match")
	command.Flags().StringVarP(&projectID, "project-id", "p", "", "project id")
	command.Flags().StringVar(&status, "status", "", "asset status")
	command.Flags().StringVar(&sort, "sort", "", "sort by name, created or size")
	bindServerFlag(command)

	return command
}

func trashAssetCmd() *cobra.Command {
	var assetID string

	command := &cobra.Command{
		Use:   "trash",
		Short: "move an asset to the trash",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"asset-id"}) {
				return
			}

			if err := apiClient().TrashAsset(context.Background(), assetID); err != nil {
				logrus.Error(err)
				return
			}

			color.Yellow("asset trashed: %s", assetID)
		},
	}

	command.Flags().StringVarP(&assetID, "asset-id", "a", "", "asset id")
	bindServerFlag(command)

	return command
}

func restoreAssetCmd() *cobra.Command {
	var assetID string

	command := &cobra.Command{
		Use:   "restore",
		Short: "restore an asset from the trash",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"asset-id"}) {
				return
			}

			asset, err := apiClient().RestoreAsset(context.Background(), assetID)
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("asset restored: %s", asset.ID)
		},
	}

	command.Flags().StringVarP(&assetID, "asset-id", "a", "", "asset id")
	bindServerFlag(command)

	return command
}

func openAssetCmd() *cobra.Command {
	var assetID string

	command := &cobra.Command{
		Use:   "open",
		Short: "open the asset folder in the file manager",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"asset-id"}) {
				return
			}

			if err := apiClient().OpenAssetFolder(context.Background(), assetID); err != nil {
				logrus.Error(err)
			}
		},
	}

	command.Flags().StringVarP(&assetID, "asset-id", "a", "", "asset id")
	bindServerFlag(command)

	return command
}

func bumpAssetCmd() *cobra.Command {
	var assetID string
	var level string

	command := &cobra.Command{
		Use:   "bump",
		Short: "bump the asset version",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"asset-id"}) {
				return
			}

			asset, err := apiClient().BumpAssetVersion(context.Background(), assetID, level)
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("asset %s is now %s", asset.Name, asset.Version)
		},
	}

	command.Flags().StringVarP(&assetID, "asset-id", "a", "", "asset id")
	command.Flags().StringVarP(&level, "level", "l", "patch", "major, minor or patch")
	bindServerFlag(command)

	return command
}

func addEdgeCmd() *cobra.Command {
	var relation string
	var sourceID string
	var targetID string

	var required = []string{"relation", "from", "to"}

	command := &cobra.Command{
		Use:     "add",
		Short:   "add an edge between two nodes",
		Example: "atlas edge add -r asset_uses_texture --from <asset-id> --to <texture-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			edge, err := apiClient().CreateEdge(context.Background(), &atlas.Edge{
				Relation: relation,
				SourceID: sourceID,
				TargetID: targetID,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("edge created: %s", edge.ID)
		},
	}

	command.Flags().StringVarP(&relation, "relation", "r", "", "edge relation")
	command.Flags().StringVar(&sourceID, "from", "", "source node id")
	command.Flags().StringVar(&targetID, "to", "", "target node id")
	bindServerFlag(command)

	return command
}

func listEdgesCmd() *cobra.Command {
	var relation string
	var sourceID string
	var targetID string

	command := &cobra.Command{
		Use:   "list",
		Short: "list edges",
		Run: func(cmd *cobra.Command, args []string) {
			edges, err := apiClient().ListEdges(context.Background(), relation, sourceID, targetID)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Relation", "Source", "Target"})
			for _, edge := range edges {
				table.Append([]string{edge.ID, edge.Relation, edge.SourceID, edge.TargetID})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&relation, "relation", "r", "", "edge relation")
	command.Flags().StringVar(&sourceID, "from", "", "source node id")
	command.Flags().StringVar(&targetID, "to", "", "target node id")
	bindServerFlag(command)

	return command
}

func removeEdgeCmd() *cobra.Command {
	var edgeID string

	command := &cobra.Command{
		Use:   "remove",
		Short: "remove an edge",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"edge-id"}) {
				return
			}

			if err := apiClient().DeleteEdge(context.Background(), edgeID); err != nil {
				logrus.Error(err)
				return
			}

			color.Yellow("edge removed: %s", edgeID)
		},
	}

	command.Flags().StringVarP(&edgeID, "edge-id", "e", "", "edge id")
	bindServerFlag(command)

	return command
}

func printAssetTable(assets []atlas.Asset) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Category", "Version", "Size", "Tags", "Status"})
	for _, asset := range assets {
		table.Append([]string{
			asset.ID,
			asset.Name,
			asset.Category,
			asset.Version,
			humanize.Bytes(uint64(asset.FileSize)),
			strings.Join(asset.Tags, ","),
			asset.Status,
		})
	}
	table.Render()
}
