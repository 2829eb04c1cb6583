package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"imagehelper/internal/capture"
	"imagehelper/internal/errors"

	"github.com/spf13/cobra"
)

// NewCaptureCmd creates the capture command
func NewCaptureCmd() *cobra.Command {
	var region string
	var dir string
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a screen region into a folder",
		Long: `Capture a screen region without the overlay. The region is given in
screen pixels as x,y,width,height; without it the whole primary display is
captured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("error getting current directory: %w", err)
				}
				dir = wd
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			grabber := capture.ScreenGrabber{}
			var r image.Rectangle
			if region != "" {
				r, err = parseRegion(region)
				if err != nil {
					return err
				}
			} else if r, err = grabber.Bounds(); err != nil {
				return err
			}

			if !cmd.Flags().Changed("delay") && cfg != nil {
				delay = cfg.HideDelay()
			}
			session := capture.NewSession(abs, grabber, delay, func() {})
			if cfg != nil {
				session.Prefix = cfg.Capture.FilePrefix
				session.Layout = cfg.Capture.TimestampLayout
			}
			path, err := session.Run(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText("Saved "+path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "region to capture as x,y,width,height")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "folder to save into (defaults to current directory)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "wait before grabbing")

	return cmd
}

// parseRegion reads "x,y,width,height" into a rectangle.
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, errors.Newf("region must be x,y,width,height: %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, errors.Newf("region must be x,y,width,height: %q", s)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, errors.Newf("region width and height must be positive: %q", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
