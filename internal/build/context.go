// Package build orchestrates one incremental build run: a compile task list
// drained to exhaustion, then a link task list, with every derived artifact
// recorded in the cache so unchanged documents are skipped on the next run.
package build

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/weft-dev/weft/internal/cache"
)

// Context owns one build run: the three path roots under the project base
// directory, the compile and link task lists, and the cache store. It is
// single-threaded; nothing here is safe for concurrent use.
type Context struct {
	SrcDir   string
	CacheDir string
	BuildDir string

	Cache  *cache.Store
	Logger *slog.Logger

	compileTasks []Task
	linkTasks    []Task
	executed     []Task
}

// NewContext builds a context rooted at baseDir, loading any existing cache
// file. An empty cacheFile selects the default name. An undecodable cache
// file fails here, before any task can run.
func NewContext(baseDir, cacheFile string) (*Context, error) {
	if cacheFile == "" {
		cacheFile = cache.DefaultFileName
	}
	ctx := &Context{
		SrcDir:   filepath.Join(baseDir, "src"),
		CacheDir: filepath.Join(baseDir, "cache"),
		BuildDir: filepath.Join(baseDir, "build"),
		Logger:   slog.Default(),
	}
	store, err := cache.Open(filepath.Join(ctx.CacheDir, cacheFile))
	if err != nil {
		return nil, err
	}
	ctx.Cache = store
	return ctx, nil
}

// AddCompileTask appends to the compile list. Adding while the compile list
// drains is allowed and is how included documents get scheduled.
func (c *Context) AddCompileTask(task Task) {
	c.compileTasks = append(c.compileTasks, task)
}

// AddLinkTask appends to the link list. Compile tasks add link work here so
// link staleness is evaluated only after every compile finished and the full
// dependency graph is in the cache.
func (c *Context) AddLinkTask(task Task) {
	c.linkTasks = append(c.linkTasks, task)
}

// Executed returns the tasks that actually ran, in execution order.
func (c *Context) Executed() []Task {
	return c.executed
}

// RunBuild drains the compile list to exhaustion, then the link list,
// strictly in that order.
func (c *Context) RunBuild() error {
	if err := c.runList(&c.compileTasks); err != nil {
		return err
	}
	return c.runList(&c.linkTasks)
}

// runList drains a task list: snapshot the current members, execute each via
// the staleness protocol, remove it from the live list, and repeat until the
// list is empty. Tasks appended mid-pass are picked up by a later snapshot,
// and each task executes at most once.
func (c *Context) runList(list *[]Task) error {
	for len(*list) > 0 {
		snapshot := append([]Task(nil), (*list)...)
		for _, task := range snapshot {
			ran, err := c.execute(task)
			removeTask(list, task)
			if err != nil {
				return err
			}
			if ran {
				c.executed = append(c.executed, task)
			}
		}
	}
	return nil
}

func (c *Context) execute(task Task) (bool, error) {
	outdated, err := task.Outdated(c)
	if err != nil {
		return false, &TaskError{Task: task.Name(), Err: err}
	}
	if !outdated {
		c.Logger.Debug("task fresh, skipping", "task", task.Name())
		return false, nil
	}
	c.Logger.Debug("task stale, running", "task", task.Name())
	if err := task.Run(c); err != nil {
		return false, &TaskError{Task: task.Name(), Err: err}
	}
	return true, nil
}

func removeTask(list *[]Task, task Task) {
	for i, candidate := range *list {
		if candidate == task {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

// SourceTimestamp returns the modification time of a file under src/.
// A missing file is a valid state, not an error.
func (c *Context) SourceTimestamp(relPath string) (time.Time, bool) {
	return mtime(filepath.Join(c.SrcDir, relPath))
}

// BuildTimestamp returns the modification time of a file under build/.
// A missing file is a valid state, not an error.
func (c *Context) BuildTimestamp(relPath string) (time.Time, bool) {
	return mtime(filepath.Join(c.BuildDir, relPath))
}

func mtime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Doc returns the cached rendered fragments for a document.
func (c *Context) Doc(name string) ([]string, error) {
	var html []string
	if err := c.Cache.DecodeInput(cache.KindDoc, name, &html); err != nil {
		return nil, err
	}
	return html, nil
}

// Title returns the cached title for a document.
func (c *Context) Title(name string) (string, error) {
	var title string
	if err := c.Cache.DecodeInput(cache.KindTitle, name, &title); err != nil {
		return "", err
	}
	return title, nil
}

// Toctree returns the cached navigation entries for a document.
func (c *Context) Toctree(name string) ([]string, error) {
	var toctree []string
	if err := c.Cache.DecodeInput(cache.KindToctree, name, &toctree); err != nil {
		return nil, err
	}
	return toctree, nil
}
