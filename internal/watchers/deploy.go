package watchers

import (
	"errors"
	"os/exec"
	"strings"
)

// Runner abstracts command execution so tests can fake docker-compose.
type Runner interface {
	Run(name string, args ...string) (stdout []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Deployer drives docker-compose against the service-list file. Each
// watcher runs as its own container; deployment is a full reconcile of the
// file.
type Deployer struct {
	ComposePath string
	run         Runner
}

func NewDeployer(composePath string) *Deployer {
	return &Deployer{ComposePath: composePath, run: execRunner{}}
}

// NewDeployerWithRunner is for tests.
func NewDeployerWithRunner(composePath string, r Runner) *Deployer {
	return &Deployer{ComposePath: composePath, run: r}
}

// ContainerID returns the running container id for a service, or empty when
// none is up.
func (d *Deployer) ContainerID(service string) (string, error) {
	out, err := d.run.Run("docker-compose", "-f", d.ComposePath, "ps", "-q", service)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Up (re)deploys every service in the file and removes containers whose
// definition is gone.
func (d *Deployer) Up() error {
	_, err := d.run.Run("docker-compose", "-f", d.ComposePath, "up", "-d", "--remove-orphans")
	return err
}

// Stderr extracts the captured stderr of a failed invocation, falling back
// to the error text.
func Stderr(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return string(exitErr.Stderr)
	}
	return err.Error()
}
