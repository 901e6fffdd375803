package generalutils

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"regexp"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// CommandExecutor abstracts process execution so callers are mockable.
type CommandExecutor interface {
	RunCommand(name string, args ...string) ([]byte, error)
}

type RealCommandExecutor struct{}

func (e *RealCommandExecutor) RunCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Browser opens URLs with the platform opener.
type Browser struct {
	Executor CommandExecutor
	GOOS     string
}

func NewBrowser() *Browser {
	return &Browser{Executor: &RealCommandExecutor{}, GOOS: runtime.GOOS}
}

// Open launches the URL in the default browser. Callers treat failure as a
// UX degradation only.
func (b *Browser) Open(url string) error {
	var name string
	var args []string
	switch b.GOOS {
	case "darwin":
		name = "open"
		args = []string{url}
	case "windows":
		name = "cmd"
		args = []string{"/C", "start", "", url}
	default:
		name = "xdg-open"
		args = []string{url}
	}
	if output, err := b.Executor.RunCommand(name, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w: %s", err, string(output))
	}
	return nil
}

// HandleSignals returns a context cancelled on SIGINT/SIGTERM so the device
// poll and remote calls abandon cleanly.
func HandleSignals() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Printf("Received termination signal: %v\n", sig)
		cancel()
	}()

	return ctx
}

func isValidRegionFormat(region string) bool {
	// Matches patterns like us-east-1, ap-southeast-2
	return regexp.MustCompile(`^[a-z]{2}-[a-z]+-\d+$`).MatchString(region)
}

var (
	validRegionsCache map[string]bool
	regionsCacheMutex sync.RWMutex
)

// IsRegionValid checks a region name against DescribeRegions, falling back
// to a format check when the API is unreachable. Results are memoized for
// the process lifetime.
func IsRegionValid(region string) bool {
	regionsCacheMutex.RLock()
	if validRegionsCache != nil {
		if cached, exists := validRegionsCache[region]; exists {
			regionsCacheMutex.RUnlock()
			return cached
		}
	}
	regionsCacheMutex.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err == nil {
		ec2Client := ec2.NewFromConfig(cfg)
		output, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
			AllRegions: aws.Bool(true),
		})
		if err == nil {
			regionsCacheMutex.Lock()
			if validRegionsCache == nil {
				validRegionsCache = make(map[string]bool)
			}
			for _, r := range output.Regions {
				if r.RegionName != nil && *r.RegionName == region {
					validRegionsCache[region] = true
					regionsCacheMutex.Unlock()
					return true
				}
			}
			validRegionsCache[region] = false
			regionsCacheMutex.Unlock()
			return false
		}
	}

	return isValidRegionFormat(region)
}
