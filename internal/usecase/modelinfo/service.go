// Package modelinfo loads the legacy LightGBM ranking artifact and reports
// its status. The artifact ships with the catalog data but is never scored;
// it exists so operators can verify the deployment carries the expected
// model file.
package modelinfo

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Status describes the model artifact.
type Status struct {
	Loaded bool
	Trees  int
	Err    string
}

// Service lazily loads the model artifact on first use, caching the result.
// A load failure is cached too so the file is probed only once.
type Service struct {
	path   string
	logger *zap.Logger

	once   sync.Once
	status Status
}

// New creates a model info service for the artifact at path.
func New(path string, logger *zap.Logger) *Service {
	return &Service{path: path, logger: logger}
}

// Status returns the cached artifact status, loading on first call.
func (s *Service) Status() Status {
	s.once.Do(func() {
		trees, err := loadBooster(s.path)
		if err != nil {
			s.status = Status{Err: err.Error()}
			s.logger.Warn("model artifact unavailable",
				zap.String("path", s.path),
				zap.Error(err))
			return
		}
		s.status = Status{Loaded: true, Trees: trees}
		s.logger.Info("model artifact loaded",
			zap.String("path", s.path),
			zap.Int("trees", trees))
	})
	return s.status
}

// loadBooster validates a LightGBM text-format booster and returns its tree
// count. The text format starts with a "tree" header line followed by a
// "version=" marker and one "Tree=N" block per tree.
func loadBooster(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		first      string
		hasVersion bool
		trees      int
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first == "" && line != "" {
			first = line
		}
		if strings.HasPrefix(line, "version=") {
			hasVersion = true
		}
		if strings.HasPrefix(line, "Tree=") {
			trees++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read model file: %w", err)
	}

	if first != "tree" {
		return 0, fmt.Errorf("not a LightGBM booster file: header %q", first)
	}
	if !hasVersion {
		return 0, fmt.Errorf("not a LightGBM booster file: missing version marker")
	}
	return trees, nil
}
