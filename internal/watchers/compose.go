package watchers

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// Status of a watcher definition relative to the running deployment.
type Status string

const (
	StatusCreated Status = "Created"
	StatusRunning Status = "Running"
)

// Watcher is one booking bot definition as exposed over the API.
type Watcher struct {
	Name      string `json:"name"`
	Status    Status `json:"status"`
	CourtTime string `json:"court_time"`
	WeekDay   string `json:"week_day"`
}

// Service is one entry of the docker-compose service list.
type Service struct {
	Image       string   `yaml:"image"`
	Environment []string `yaml:"environment"`
	Command     string   `yaml:"command"`
}

// Compose is the declarative service-list file. It is the single source of
// truth for which watchers exist; deployment reconciles containers to it.
type Compose struct {
	Version  string             `yaml:"version"`
	Services map[string]Service `yaml:"services"`

	path string
}

// LoadCompose reads and decodes the service-list file.
func LoadCompose(path string) (*Compose, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read compose file: %w", err)
	}
	var c Compose
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode compose file: %w", err)
	}
	if c.Services == nil {
		c.Services = map[string]Service{}
	}
	c.path = abs
	return &c, nil
}

// Save writes the service list back to the file it was loaded from.
func (c *Compose) Save() error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0o644)
}

func (c *Compose) Path() string { return c.path }

func (c *Compose) Add(name string, svc Service) {
	c.Services[name] = svc
}

func (c *Compose) Remove(name string) error {
	if _, ok := c.Services[name]; !ok {
		return fmt.Errorf("service %q not found", name)
	}
	delete(c.Services, name)
	return nil
}

// Names returns the service names in stable order.
func (c *Compose) Names() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// commandPattern matches the booker invocation a watcher service runs.
var commandPattern = regexp.MustCompile(`wanaplay book -c (\d{2}:\d{2}) -w (\w+)`)

// ServiceFor builds the compose service that runs one watcher. Each watcher
// gets its own container, hence its own session and HTTP context.
func ServiceFor(w Watcher, image, login, password string) Service {
	return Service{
		Image: image,
		Environment: []string{
			"wanaplay_login=" + login,
			"wanaplay_password=" + password,
		},
		Command: fmt.Sprintf("wanaplay book -c %s -w %s", w.CourtTime, w.WeekDay),
	}
}

// WatcherFromService recovers the watcher definition from a service's
// command line.
func WatcherFromService(name string, svc Service) (Watcher, error) {
	m := commandPattern.FindStringSubmatch(svc.Command)
	if m == nil {
		return Watcher{}, fmt.Errorf("service %q has an unrecognized command %q", name, svc.Command)
	}
	return Watcher{
		Name:      name,
		Status:    StatusCreated,
		CourtTime: m[1],
		WeekDay:   m[2],
	}, nil
}
