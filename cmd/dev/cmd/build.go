package cmd

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/gophertribe/devtool/build"
	"github.com/spf13/cobra"
)

const (
	binary      = "dist/nunchuck"
	mainPackage = "./cmd/nunchuck"
	builder     = "gophertribe/gobuild:1.25-bookworm"
)

// boards maps the single board computers the tool is deployed on to their GOOS/GOARCH.
var boards = map[string][2]string{
	"nanopi": {"linux", "arm"},
	"raspi":  {"linux", "arm64"},
}

func BuildCmd() *cobra.Command {
	var (
		goos, goarch, crossOS, crossArch, version, board string
		noCache                                          bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the nunchuck binary",
		Long: `Build the nunchuck binary into dist/.

Native builds use the local toolchain. Other targets are built inside the
gobuild container which cross-compiles with cgo enabled for the HID bridge.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if board != "" {
				target, ok := boards[board]
				if !ok {
					return fmt.Errorf("unknown board %q", board)
				}
				goos, goarch = target[0], target[1]
			}
			if goos == runtime.GOOS && goarch == runtime.GOARCH {
				// inside the container the host matches and the cross flags name the target
				if crossOS != "" && crossArch != "" {
					goos, goarch = crossOS, crossArch
				}
				slog.Info("building", "output", binary, "os", goos, "arch", goarch, "version", version)
				return build.GoBuild(binary, mainPackage, build.GoBuildOpts{
					Version:       version,
					InjectVersion: true,
					ConfigPackage: "github.com/mklimuk/nunchuck/pkg/config",
					EnableCgo:     true,
					OS:            goos,
					Arch:          goarch,
				})
			}
			slog.Info("building in container", "os", goos, "arch", goarch, "image", builder)
			return build.Docker(cmd.Context(), fmt.Sprintf("./dev-%s-%s", goos, goarch),
				[]string{"build", "--version", version, "--cross-os", goos, "--cross-arch", goarch},
				build.DockerBuildOpts{NoCache: noCache, Image: builder})
		},
	}
	cmd.Flags().StringVar(&goos, "os", runtime.GOOS, "target OS")
	cmd.Flags().StringVar(&goarch, "arch", runtime.GOARCH, "target architecture")
	cmd.Flags().StringVar(&crossOS, "cross-os", "", "OS to cross-compile for")
	cmd.Flags().StringVar(&crossArch, "cross-arch", "", "architecture to cross-compile for")
	cmd.Flags().StringVar(&board, "board", "", "target board preset: nanopi or raspi")
	cmd.Flags().StringVar(&version, "version", "latest", "version injected into the binary")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the container build cache")
	return cmd
}
