package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bitnom/path2md/pkg/fence"
	"github.com/bitnom/path2md/pkg/logging"
	"github.com/bitnom/path2md/pkg/version"
)

var (
	outputFile string
	outputDir  string

	extensions     []string
	omitExtensions []string
	omitFiles      []string
	omitDirs       []string
	whitelistFiles []string
	whitelistDirs  []string
	whitelist      []string

	gitignorePath  string
	obeyGitignores bool
	maxSize        int64
	maxDepth       int

	noCom      bool
	truncLn    int
	truncStr   int
	maxLnSpace int

	languagesFile string
	showTree      bool
	toClipboard   bool
	debugMode     bool
)

var rootLogger *zap.Logger

// RootCmd is the base command: it scans a directory and wraps every
// surviving file's content in a labeled markdown fence.
var RootCmd = &cobra.Command{
	Use:   "path2md DIRECTORY",
	Short: "Wrap file contents in markdown code fences",
	Long: `path2md walks a directory tree and emits, for every file that survives the
configured inclusion and exclusion rules, the file's path and content fenced
as a labeled markdown block. The result goes to stdout, a single output
file, or one markdown file per source file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

// Execute runs the root command with the logger built in main.
func Execute(logger *zap.Logger) error {
	rootLogger = logger
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.Flags()

	flags.StringVar(&outputFile, "output-file", "", "Output markdown file path; stdout when omitted")
	flags.StringVar(&outputDir, "output-dir", "", "Output directory for individual markdown files")
	flags.BoolVarP(&toClipboard, "clipboard", "c", false, "Copy output to the clipboard instead of printing it")

	flags.StringSliceVar(&extensions, "extensions", nil, "File extensions to process; all extensions when omitted")
	flags.StringSliceVar(&omitExtensions, "omit", nil, "File extensions to omit but still reference in the output")
	flags.StringSliceVar(&omitFiles, "omit-files", nil, "Filenames to omit but still reference in the output")
	flags.StringSliceVar(&omitDirs, "omit-dirs", nil, "Directory names to omit from traversal")
	flags.StringSliceVar(&whitelistFiles, "whitelist-files", nil, "If set, only these filenames are parsed")
	flags.StringSliceVar(&whitelistDirs, "whitelist-dirs", nil, "If set, only these directory names are traversed")
	flags.StringSliceVar(&whitelist, "whitelist", nil, "Combined list of directory and file names to traverse/parse")

	flags.StringVar(&gitignorePath, "gitignore", "", "Path to a gitignore-style pattern file applied to the whole scan")
	flags.BoolVar(&obeyGitignores, "obey-gitignores", false, "Obey .gitignore files found in traversed directories")
	flags.Int64Var(&maxSize, "max-size", fence.DefaultMaxFileSize, "Maximum file size in bytes to render")
	flags.IntVar(&maxDepth, "depth", -1, "Limit the directory recursion depth (-1 for no limit)")

	flags.BoolVar(&noCom, "nocom", false, "Omit line and block comments from the output")
	flags.IntVar(&truncLn, "truncln", 0, "Truncate lines longer than this many characters (0 for off)")
	flags.IntVar(&truncStr, "truncstr", 0, "Truncate string literals longer than this many characters (0 for off)")
	flags.IntVar(&maxLnSpace, "maxlnspace", -1, "Maximum consecutive empty lines allowed (-1 for no limit)")

	flags.StringVar(&languagesFile, "languages", "", "Path to a languages.yml overlay for fence labels and comment styles")
	flags.BoolVar(&showTree, "tree", false, "Prepend a directory tree of the included files")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging")

	RootCmd.MarkFlagsMutuallyExclusive("output-file", "output-dir", "clipboard")

	viper.SetDefault("max-size", fence.DefaultMaxFileSize)
	viper.SetDefault("depth", -1)
	viper.SetDefault("maxlnspace", -1)
}

// initConfig reads the config file and environment, then lets them supply
// defaults for any flag the user did not set explicitly, so precedence is
// flag > env > config file > built-in default.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "path2md"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("PATH2MD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			rootLogger.Warn("Error reading config file", zap.Error(err))
		}
	} else {
		rootLogger.Debug("Using config file", zap.String("file", viper.ConfigFileUsed()))
	}

	RootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !viper.IsSet(f.Name) {
			return
		}
		if f.Value.Type() == "stringSlice" {
			_ = RootCmd.Flags().Set(f.Name, strings.Join(viper.GetStringSlice(f.Name), ","))
		} else {
			_ = RootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := rootLogger
	if debugMode {
		debugLogger, err := logging.Setup(true, "path2md", version.Get().Version)
		if err == nil {
			logger = debugLogger
			defer logger.Sync() //nolint:errcheck
		}
	}

	directory := "."
	if len(args) == 1 {
		directory = args[0]
	}

	rules := fence.DefaultRuleSet()
	rules.Extensions = extensions
	rules.OmitExtensions = omitExtensions
	rules.OmitFiles = omitFiles
	rules.OmitDirs = omitDirs
	rules.WhitelistFiles = whitelistFiles
	rules.WhitelistDirs = whitelistDirs
	rules.Whitelist = whitelist
	rules.MaxDepth = maxDepth
	rules.MaxFileSize = maxSize
	rules.GlobalIgnoreFile = gitignorePath
	rules.ObeyGitignores = obeyGitignores
	rules.Transform = fence.TransformConfig{
		StripComments:   noCom,
		MaxLineLength:   truncLn,
		MaxStringLength: truncStr,
		MaxBlankLines:   maxLnSpace,
	}

	langs, err := fence.LoadLanguageTable(languagesFile)
	if err != nil {
		return err
	}

	out := fence.OutputConfig{
		File:      outputFile,
		Dir:       outputDir,
		Clipboard: toClipboard,
		Tree:      showTree,
	}

	_, err = fence.Run(directory, rules, out, langs, logger)
	return err
}
