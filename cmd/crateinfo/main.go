package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/crateinfo/crateinfo-go/internal/config"
	"github.com/crateinfo/crateinfo-go/internal/utils"
	"github.com/crateinfo/crateinfo-go/pkg/cargotoml"
	"github.com/crateinfo/crateinfo-go/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crateinfo [path]",
	Short: "Inspect and normalize Cargo.toml manifests",
	Long: `CrateInfo loads a Cargo.toml manifest, fills in the product
declarations the format allows to be left implicit (src/lib.rs,
src/main.rs, src/bin, examples, tests, benches, build.rs), and re-emits
the result as normalized TOML, JSON, or YAML.

The path argument may be the manifest file itself or the package
directory containing it; it defaults to ./Cargo.toml.`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.crateinfo/config.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "toml", "Output format: toml, json, or yaml")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.PersistentFlags().Bool("no-complete", false, "Skip filesystem completion, emit the manifest as written")
	rootCmd.PersistentFlags().String("git-rev", "", "Complete against a committed git tree instead of the working directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("output.path", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("completion.git_rev", rootCmd.PersistentFlags().Lookup("git-rev"))

	depsCmd.Flags().String("kind", "normal", "Dependency kind: normal, dev, or build")

	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	path, err := manifestPath(argOrDefault(args))
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("loading manifest")

	noComplete, _ := cmd.Flags().GetBool("no-complete")
	complete := cfg.Completion.Enabled && !noComplete
	m, err := loadManifest(path, complete, cfg.Completion.GitRev)
	if err != nil {
		return err
	}

	out, err := renderManifest(m, cfg.Output.Format)
	if err != nil {
		return err
	}

	if cfg.Output.Path == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	log.Debug().Str("output", cfg.Output.Path).Str("format", cfg.Output.Format).Msg("writing manifest")
	return os.WriteFile(cfg.Output.Path, out, 0o644)
}

func argOrDefault(args []string) string {
	if len(args) == 0 {
		return "Cargo.toml"
	}
	return args[0]
}

// manifestPath resolves the CLI path argument: a directory means the
// Cargo.toml inside it.
func manifestPath(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return filepath.Join(arg, "Cargo.toml"), nil
	}
	return arg, nil
}

func loadManifest(path string, complete bool, gitRev string) (*cargotoml.Manifest[cargotoml.Value], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := cargotoml.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !complete {
		return m, nil
	}

	dir := filepath.Dir(path)
	if gitRev != "" {
		fsys, err := cargotoml.NewGitFS(dir, gitRev)
		if err != nil {
			return nil, fmt.Errorf("resolving git revision %q: %w", gitRev, err)
		}
		if err := m.CompleteFromFS(fsys); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err := m.CompleteFromPath(dir); err != nil {
		return nil, err
	}
	return m, nil
}

func renderManifest(m *cargotoml.Manifest[cargotoml.Value], format string) ([]byte, error) {
	switch format {
	case "toml":
		return m.MarshalTOML()
	case "json":
		out, err := json.MarshalIndent(m.Tree(), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml":
		return yaml.Marshal(m.Tree())
	default:
		return nil, fmt.Errorf("unknown output format %q (want toml, json, or yaml)", format)
	}
}

var depsCmd = &cobra.Command{
	Use:   "deps [path]",
	Short: "List the manifest's dependencies",
	Long: `Lists dependencies with their version requirement, declared
features, and source: the public registry, a git URL, a local path, or an
alternate registry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := manifestPath(argOrDefault(args))
		if err != nil {
			return err
		}
		m, err := loadManifest(path, false, "")
		if err != nil {
			return err
		}

		kind, _ := cmd.Flags().GetString("kind")
		deps, err := dependenciesOfKind(m, kind)
		if err != nil {
			return err
		}
		for _, line := range dependencyLines(deps) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func dependenciesOfKind(m *cargotoml.Manifest[cargotoml.Value], kind string) (cargotoml.DepsSet, error) {
	switch kind {
	case "normal":
		return m.Dependencies, nil
	case "dev":
		return m.DevDependencies, nil
	case "build":
		return m.BuildDependencies, nil
	default:
		return nil, fmt.Errorf("unknown dependency kind %q (want normal, dev, or build)", kind)
	}
}

func dependencyLines(deps cargotoml.DepsSet) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		dep := deps[name]
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s", name, dep.Req())
		if renamed := dep.RenamedPackage(); renamed != "" {
			fmt.Fprintf(&b, " (package %s)", renamed)
		}
		if features := dep.ReqFeatures(); len(features) > 0 {
			fmt.Fprintf(&b, " features=%s", strings.Join(features, ","))
		}
		if dep.IsOptional() {
			b.WriteString(" optional")
		}
		fmt.Fprintf(&b, " [%s]", dependencySource(dep))
		lines = append(lines, b.String())
	}
	return lines
}

func dependencySource(dep cargotoml.Dependency) string {
	switch {
	case dep.IsCratesIO():
		return "crates-io"
	case dep.Git() != "":
		return "git " + dep.Git()
	case dep.Detail != nil && dep.Detail.Path != "":
		return "path " + dep.Detail.Path
	case dep.Detail != nil && dep.Detail.Registry != "":
		return "registry " + dep.Detail.Registry
	default:
		return "registry-index"
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
