package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blacksmith/atlas/internal/compress"
	"github.com/blacksmith/atlas/internal/delivery"
)

var deliveryCmd = &cobra.Command{
	Use:   "delivery",
	Short: "delivery commands",
}

func init() {
	rootCmd.AddCommand(deliveryCmd)
	deliveryCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	deliveryCmd.AddCommand(slatesCmd())
}

func slatesCmd() *cobra.Command {
	var csvPath string
	var templateDir string
	var outPath string
	var codec string

	command := &cobra.Command{
		Use:     "slates",
		Short:   "render delivery slates from a shot list CSV",
		Example: "atlas delivery slates -f shots.csv -o slates.lz4 --codec lz4",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"file"}) {
				return
			}

			file, err := os.Open(csvPath)
			if err != nil {
				logrus.Error(err)
				return
			}
			defer file.Close()

			records, err := delivery.ParseCSV(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			renderer, err := delivery.NewRenderer(templateDir)
			if err != nil {
				logrus.Error(err)
				return
			}

			slates, err := renderer.RenderAll(records)
			if err != nil {
				logrus.Error(err)
				return
			}

			if outPath == "" {
				for _, slate := range slates {
					fmt.Println(slate)
				}
				return
			}

			data, err := delivery.BuildArchive(slates, compress.FromName(codec))
			if err != nil {
				logrus.Error(err)
				return
			}

			if err := os.WriteFile(outPath, data, 0644); err != nil {
				logrus.Error(err)
				return
			}

			color.Green("wrote %d slates to %s", len(slates), outPath)
		},
	}

	command.Flags().StringVarP(&csvPath, "file", "f", "", "shot list CSV file")
	command.Flags().StringVar(&templateDir, "template-dir", "", "override the embedded slate templates")
	command.Flags().StringVarP(&outPath, "out", "o", "", "write a compressed slate archive instead of printing")
	command.Flags().StringVar(&codec, "codec", "lz4", "archive codec, one of nop, gzip, lz4, brotli")

	return command
}
