package standardize

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/devscripts-labs/devscripts/internal/manifest"
	"github.com/devscripts-labs/devscripts/internal/pkgconfig"
	"github.com/devscripts-labs/devscripts/internal/version"
)

const (
	// DefaultNodeEngine is the engines.node value packages are bumped to.
	DefaultNodeEngine = ">=16.0.0"
	// DefaultSharedConfig is the package a tsconfig.json must extend for the
	// node engine to be managed.
	DefaultSharedConfig = "@salesforce/dev-config"
)

// Action descriptions recorded on the manifest.
const (
	actionLicense    = "updating license"
	actionScripts    = "standardizing scripts: "
	actionNodeEngine = "updating node engine"
)

// ResolveFunc produces the target configuration for a package root.
type ResolveFunc func(packageRoot string, opts pkgconfig.Options) (*pkgconfig.Config, error)

// Engine standardizes package manifests. The zero value is usable.
type Engine struct {
	// Resolve defaults to pkgconfig.Resolve.
	Resolve ResolveFunc
	// Logger defaults to log.Default().
	Logger *log.Logger
	// NodeEngine defaults to DefaultNodeEngine.
	NodeEngine string
	// SharedConfig defaults to DefaultSharedConfig.
	SharedConfig string
	// DryRun computes and reports actions without writing package.json.
	DryRun bool
}

// Result describes one standardization pass.
type Result struct {
	PackageRoot string
	Name        string
	Actions     []string
	Written     bool
}

// Run standardizes the package at packageRoot. A missing or malformed
// package.json aborts the pass before anything is changed.
func (e *Engine) Run(packageRoot string) (*Result, error) {
	logger := e.logger().With("package", packageRoot)

	opts := pkgconfig.Options{JSBinScripts: pkgconfig.DetectJSBinScripts(packageRoot)}
	cfg, err := e.resolve()(packageRoot, opts)
	if err != nil {
		return nil, fmt.Errorf("resolving config for %s: %w", packageRoot, err)
	}
	logger.Debug("resolved config", "license", cfg.License, "scripts", len(cfg.Scripts), "wireit", len(cfg.Wireit), "jsBinScripts", opts.JSBinScripts)

	doc, err := manifest.Load(packageRoot)
	if err != nil {
		return nil, err
	}

	if err := mergeLicense(doc, cfg); err != nil {
		return nil, err
	}
	if err := mergeScripts(doc, cfg); err != nil {
		return nil, err
	}
	if err := e.mergeNodeEngine(doc, logger); err != nil {
		return nil, err
	}

	result := &Result{
		PackageRoot: packageRoot,
		Name:        doc.Name(),
		Actions:     doc.Actions(),
	}
	if e.DryRun {
		logger.Debug("dry run, skipping write", "actions", len(result.Actions))
		return result, nil
	}

	written, err := doc.Write()
	if err != nil {
		return nil, err
	}
	result.Written = written
	logger.Debug("standardized", "actions", len(result.Actions), "written", written)
	return result, nil
}

func mergeLicense(doc *manifest.Document, cfg *pkgconfig.Config) error {
	license := cfg.License
	if license == "" {
		license = pkgconfig.DefaultLicense
	}
	if doc.License() == license {
		return nil
	}
	if err := doc.SetLicense(license); err != nil {
		return err
	}
	doc.RecordAction(actionLicense)
	return nil
}

// mergeScripts overwrites scripts that differ from the resolved ones. Wireit
// entries are only merged when the resolved config has at least one script.
func mergeScripts(doc *manifest.Document, cfg *pkgconfig.Config) error {
	if len(cfg.Scripts) == 0 {
		return nil
	}

	var changed []string

	scripts := doc.Scripts()
	for _, name := range slices.Sorted(maps.Keys(cfg.Scripts)) {
		command := cfg.Scripts[name]
		if current, ok := scripts[name]; ok && current == command {
			continue
		}
		if err := doc.SetScript(name, command); err != nil {
			return err
		}
		changed = append(changed, name)
	}

	if len(cfg.Wireit) > 0 {
		wireit := doc.Wireit()
		for _, name := range slices.Sorted(maps.Keys(cfg.Wireit)) {
			want := cfg.Wireit[name]
			if current, ok := wireit[name]; ok && reflect.DeepEqual(current, want) {
				continue
			}
			if err := doc.SetWireit(name, want); err != nil {
				return err
			}
			changed = append(changed, name)
		}
	}

	if len(changed) > 0 {
		doc.RecordAction(actionScripts + strings.Join(changed, ", "))
	}
	return nil
}

// mergeNodeEngine bumps engines.node to the target when the package extends
// the shared config and declares an older engine.
func (e *Engine) mergeNodeEngine(doc *manifest.Document, logger *log.Logger) error {
	probe, err := ProbeMarker(doc.Root(), e.sharedConfig())
	switch probe {
	case ReadError:
		logger.Debug("skipping node engine", "probe", probe, "err", err)
		return nil
	case NotApplicable:
		return nil
	}

	current := doc.EngineNode()
	target := e.nodeEngine()
	if current == "" || current == target {
		return nil
	}
	if !version.LessThan(version.Core(stripRange(current)), version.Core(stripRange(target))) {
		return nil
	}

	if err := doc.SetEngineNode(target); err != nil {
		return err
	}
	doc.RecordAction(actionNodeEngine)
	return nil
}

// stripRange drops a leading ">=" operator.
func stripRange(v string) string {
	return strings.TrimSpace(strings.Replace(v, ">=", "", 1))
}

func (e *Engine) resolve() ResolveFunc {
	if e.Resolve != nil {
		return e.Resolve
	}
	return pkgconfig.Resolve
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func (e *Engine) nodeEngine() string {
	if e.NodeEngine != "" {
		return e.NodeEngine
	}
	return DefaultNodeEngine
}

func (e *Engine) sharedConfig() string {
	if e.SharedConfig != "" {
		return e.SharedConfig
	}
	return DefaultSharedConfig
}
