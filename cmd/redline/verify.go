package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/verify"
)

func verifyCmd(log *logrus.Logger) *cobra.Command {
	var (
		df  detectorFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "verify <image>...",
		Short: "Draw the detected rules over page rasters into a PDF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			det := df.detector()
			pages := make([]verify.Page, 0, len(args))
			for _, path := range args {
				r, err := raster.Load(path)
				if err != nil {
					return err
				}
				segs := det.Detect(r.Clone())
				log.WithFields(logrus.Fields{"path": path, "segments": len(segs)}).Info("scanned")
				pages = append(pages, verify.Page{Raster: r, Segments: segs})
			}
			if err := verify.WriteFile(out, pages); err != nil {
				return err
			}
			log.WithField("path", out).Info("Wrote verification overlay")
			return nil
		},
	}
	df.register(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "verify.pdf", "overlay PDF to write")
	return cmd
}
