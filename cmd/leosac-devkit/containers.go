package main

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/spf13/cobra"

	"github.com/leosac/devkit/internal/dockerutil"
	"github.com/leosac/devkit/internal/render"
)

var (
	psAll    bool
	psFormat string

	inspectFormat string
	versionFormat string
)

const daemonTimeout = 30 * time.Second

func daemonContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), daemonTimeout)
}

func newFormatter(value string) (*render.Formatter, error) {
	format, err := render.ParseFormat(value)
	if err != nil {
		return nil, err
	}
	return render.New(format), nil
}

// containerSummary is the row shape the ps command renders.
type containerSummary struct {
	ID    string   `json:"id"`
	Names []string `json:"names"`
	Image string   `json:"image"`
	State string   `json:"state"`
}

func summarize(c types.Container) containerSummary {
	id := c.ID
	if len(id) > 12 {
		id = id[:12]
	}
	return containerSummary{
		ID:    id,
		Names: c.Names,
		Image: c.Image,
		State: c.State,
	}
}

func (s containerSummary) String() string {
	name := ""
	if len(s.Names) > 0 {
		name = s.Names[0]
	}
	return fmt.Sprintf("%-12s  %-30s  %-30s  %s", s.ID, name, s.Image, s.State)
}

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List containers on the development daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter(psFormat)
		if err != nil {
			return err
		}
		formatter.SetWriter(cmd.OutOrStdout())

		daemon, err := dockerutil.NewClient(cfg.DaemonHost())
		if err != nil {
			return err
		}
		defer daemon.Close()

		ctx, cancel := daemonContext()
		defer cancel()

		containers, err := daemon.ListContainers(ctx, psAll)
		if err != nil {
			return err
		}

		if render.Format(psFormat) == render.FormatText {
			for _, c := range containers {
				if err := formatter.Print(summarize(c)); err != nil {
					return err
				}
			}
			return nil
		}

		rows := make([]containerSummary, 0, len(containers))
		for _, c := range containers {
			rows = append(rows, summarize(c))
		}
		return formatter.Print(rows)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "Show a container's inspection document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter(inspectFormat)
		if err != nil {
			return err
		}
		formatter.SetWriter(cmd.OutOrStdout())

		daemon, err := dockerutil.NewClient(cfg.DaemonHost())
		if err != nil {
			return err
		}
		defer daemon.Close()

		ctx, cancel := daemonContext()
		defer cancel()

		info, err := daemon.Inspect(ctx, args[0])
		if err != nil {
			return err
		}
		return formatter.Print(info)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show harness and daemon versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter(versionFormat)
		if err != nil {
			return err
		}
		formatter.SetWriter(cmd.OutOrStdout())

		daemon, err := dockerutil.NewClient(cfg.DaemonHost())
		if err != nil {
			return err
		}
		defer daemon.Close()

		ctx, cancel := daemonContext()
		defer cancel()

		daemonVersion, err := daemon.Version(ctx)
		if err != nil {
			return err
		}
		return formatter.Print(map[string]any{
			"devkit": version,
			"daemon": daemonVersion,
		})
	},
}

func init() {
	psCmd.Flags().BoolVarP(&psAll, "all", "a", false, "Include stopped containers")
	psCmd.Flags().StringVar(&psFormat, "format", "text", "Output format: text, json or pretty")
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "pretty", "Output format: text, json or pretty")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "Output format: text, json or pretty")
}
