package engine

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/datasetio"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// resultsPath builds the eval_results_<timestamp>.json path, sanitizing
// timestamp so it is safe as a filename component.
func resultsPath(dir, timestamp string) string {
	safe := strings.NewReplacer(":", "-", " ", "_").Replace(timestamp)
	return filepath.Join(dir, "eval_results_"+safe+".json")
}

// FileResultStore implements internal/httpapi.ResultStore by reading
// previously persisted eval_results_*.json reports back off disk.
type FileResultStore struct {
	dir string
}

// NewFileResultStore returns a FileResultStore rooted at dir.
func NewFileResultStore(dir string) *FileResultStore {
	return &FileResultStore{dir: dir}
}

// List returns every result filename under dir, most recent first.
func (s *FileResultStore) List() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "eval_results_") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

// Get loads filename's report from dir.
func (s *FileResultStore) Get(filename string) (domain.RunReport, bool) {
	if strings.ContainsAny(filename, "/\\") {
		return domain.RunReport{}, false
	}
	report, err := datasetio.LoadReport(filepath.Join(s.dir, filename))
	if err != nil {
		return domain.RunReport{}, false
	}
	return report, true
}
