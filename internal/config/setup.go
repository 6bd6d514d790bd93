package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fakeyudi/clausesense/internal/options"
)

// Exists reports whether the global config file is present on disk.
func Exists() bool {
	p, err := GlobalPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// RunSetup runs the interactive setup wizard and saves the resulting
// config. If existing is non-nil, it is used as the default for each
// prompt (edit mode).
func RunSetup(existing *Config) (*Config, error) {
	r := bufio.NewReader(os.Stdin)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Printf("%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Printf("%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	askChoice := func(prompt string, allowed []string, defaultVal string) (string, error) {
		ans, err := ask(fmt.Sprintf("%s (%s)", prompt, strings.Join(allowed, "/")), defaultVal)
		if err != nil {
			return "", err
		}
		ans = strings.ToLower(ans)
		for _, a := range allowed {
			if ans == a {
				return ans, nil
			}
		}
		return defaultVal, nil
	}

	cfg := Defaults()
	if existing != nil {
		cfg = *existing
	}

	fmt.Println()
	fmt.Println("  ┌───────────────────────────────────┐")
	fmt.Println("  │   clausesense — first-time setup  │")
	fmt.Println("  └───────────────────────────────────┘")
	fmt.Println()

	var err error

	cfg.GatewayURL, err = ask("  Gateway URL", cfg.GatewayURL)
	if err != nil {
		return nil, err
	}

	timeout, err := ask("  Request timeout in seconds", strconv.Itoa(cfg.TimeoutSec))
	if err != nil {
		return nil, err
	}
	if n, convErr := strconv.Atoi(timeout); convErr == nil && n > 0 {
		cfg.TimeoutSec = n
	}

	cfg.OutputDir, err = ask("  Report download directory", cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	cfg.Tone, err = askChoice("  Default tone", options.Tones, cfg.Tone)
	if err != nil {
		return nil, err
	}

	cfg.Structure, err = askChoice("  Default structure", options.Structures, cfg.Structure)
	if err != nil {
		return nil, err
	}

	cfg.Focus, err = askChoice("  Default focus", options.Focuses, cfg.Focus)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	if err := Save(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
