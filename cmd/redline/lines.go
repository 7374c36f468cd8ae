package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thywilljoshua/redline/internal/strike"
)

// detectorFlags are shared by the commands that scan raster images directly.
type detectorFlags struct {
	threshold uint8
	noMasks   bool
}

func (d *detectorFlags) register(fl *pflag.FlagSet) {
	fl.Uint8Var(&d.threshold, "threshold", strike.DefaultDarkThreshold, "luma below which a pixel counts as ink")
	fl.BoolVar(&d.noMasks, "no-masks", false, "do not white out the seal and bottom edge before scanning")
}

func (d detectorFlags) detector() strike.Detector {
	det := strike.DefaultDetector()
	det.Threshold = d.threshold
	if d.noMasks {
		det.Masks = nil
	}
	return det
}

func linesCmd(log *logrus.Logger) *cobra.Command {
	var (
		df  detectorFlags
		all bool
	)
	cmd := &cobra.Command{
		Use:   "lines <image>...",
		Short: "Print the horizontal rules detected in page rasters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			det := df.detector()
			out := cmd.OutOrStdout()
			for _, path := range args {
				segs, err := det.DetectFile(path)
				if err != nil {
					return err
				}
				log.WithFields(logrus.Fields{"path": path, "segments": len(segs)}).Debug("scanned")
				fmt.Fprintf(out, "%s: %d\n", path, len(segs))
				if all || len(segs) < 10 {
					for _, s := range segs {
						fmt.Fprintf(out, "  %s\n", s)
					}
				}
			}
			return nil
		},
	}
	df.register(cmd.Flags())
	cmd.Flags().BoolVar(&all, "all", false, "print every segment, not only when there are fewer than 10")
	return cmd
}
