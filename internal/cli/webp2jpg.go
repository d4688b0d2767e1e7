package cli

import (
	"fmt"

	"github.com/mgpai22/filmcrew/internal/imageconv"
	"github.com/spf13/cobra"
)

var webp2jpgCmd = &cobra.Command{
	Use:   "webp2jpg [directory]",
	Short: "Convert every WebP image in a directory to JPEG",
	Long: `Convert each *.webp file directly inside the directory to <name>.jpg
next to it. Alpha is dropped and images are written at JPEG quality 90.

Example:
  filmcrew webp2jpg files/20240309_140507_Night_Shift`,
	Args: cobra.ExactArgs(1),
	RunE: runWebP2JPG,
}

func init() {
	rootCmd.AddCommand(webp2jpgCmd)
}

func runWebP2JPG(cmd *cobra.Command, args []string) error {
	stats, err := imageconv.ConvertDir(args[0])
	if err != nil {
		return err
	}

	for _, convErr := range stats.Errors {
		logger.Warnw("Conversion failed", "error", convErr)
	}

	fmt.Println(renderTable(
		[]string{"Total", "Converted", "Failed"},
		[][]string{{
			fmt.Sprint(stats.Total),
			fmt.Sprint(stats.Converted),
			fmt.Sprint(stats.Failed),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight},
	))

	if stats.Total == 0 {
		fmt.Println("No WebP files found")
	}
	return nil
}
