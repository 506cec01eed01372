package planfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/zprov/internal/domain"
	"github.com/bnema/zprov/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	planFileMode    = 0o600
	planDirMode     = 0o700
	tempFilePattern = ".plan-*.tmp"

	DefaultFileName = "zprov-plan.toml"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported plan file format")

// FormatForPath picks the codec from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .toml, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

type Repository struct{}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.PlanRepository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Load(ctx context.Context, path string) (domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, err
	}

	path, err := normalizePlanPath(path)
	if err != nil {
		return domain.Plan{}, err
	}
	format, err := FormatForPath(path)
	if err != nil {
		return domain.Plan{}, err
	}

	mu := lockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("read plan file: %w", err)
	}

	plan, err := Decode(data, format)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("load plan %s: %w", path, err)
	}

	return plan, nil
}

func (r *Repository) Save(ctx context.Context, path string, plan domain.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := normalizePlanPath(path)
	if err != nil {
		return err
	}
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(plan, format)
	if err != nil {
		return err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeAtomic(path, data)
}

func Encode(plan domain.Plan, format Format) ([]byte, error) {
	schema := toSchema(plan)

	switch format {
	case FormatTOML:
		data, err := toml.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("encode plan file: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("encode plan file: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Decode parses and validates a plan document.
func Decode(data []byte, format Format) (domain.Plan, error) {
	var schema planSchema

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &schema); err != nil {
			return domain.Plan{}, fmt.Errorf("decode plan file: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return domain.Plan{}, fmt.Errorf("decode plan file: %w", err)
		}
	default:
		return domain.Plan{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := schema.validateVersion(); err != nil {
		return domain.Plan{}, err
	}
	schema.applyDefaults()

	plan, err := fromSchema(schema)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("%w: %w", domain.ErrInvalidPlan, err)
	}
	if err := plan.Validate(); err != nil {
		return domain.Plan{}, err
	}

	return plan, nil
}

func normalizePlanPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("plan path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve plan path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), planDirMode); err != nil {
		return fmt.Errorf("create plan directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp plan file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp plan file: %w", err)
	}

	if err := tempFile.Chmod(planFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp plan file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp plan file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace plan file: %w", err)
	}

	cleanup = false
	return nil
}
