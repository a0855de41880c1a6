// Package main provides an interactive CLI for running convergence
// scenarios with full session logging.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/integrationtest/email"
	"github.com/rickchristie/duet/integrationtest/testutil"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

type menuItem struct {
	name        string
	description string
	run         func(
		ctx context.Context,
		w io.Writer,
		config testutil.TestConfig,
	) (*duet.ConvergenceResult, error)
	interactive bool
}

func run() error {
	// Create log directory and file
	logDir := ".logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create log directory: %w", err)
	}

	logFile, err := os.Create(
		filepath.Join(logDir, "cli_convergence.log"))
	if err != nil {
		return fmt.Errorf(
			"failed to create log file: %w", err)
	}
	defer logFile.Close()

	// Create readline instance for menu
	rl, err := readline.New(
		colorCyan +
			"Enter selection (or 'q' to quit): " +
			colorReset)
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	// Check if API key is set
	if os.Getenv(testutil.LiveKeyEnv) == "" {
		fmt.Fprintf(os.Stderr,
			"%sWARNING: %s environment variable is not set!%s\n",
			colorYellow, testutil.LiveKeyEnv, colorReset)
		fmt.Fprintf(os.Stderr,
			"%sLive scenarios will fail. Scripted ones still work.%s\n",
			colorYellow, colorReset)
		fmt.Fprintln(os.Stderr)
	}

	// Build menu items
	var menuItems []menuItem
	for _, tc := range email.GetEmailTestCases() {
		menuItems = append(menuItems, menuItem{
			name:        tc.Name,
			description: tc.Description,
			run:         tc.Run,
		})
	}
	menuItems = append(menuItems, menuItem{
		name: "Converge Your Own Idea",
		description: "Type an idea and watch the loop converge " +
			"(needs " + testutil.LiveKeyEnv + ")",
		interactive: true,
	})

	// Print menu
	fmt.Printf("%s%sAvailable Scenarios:%s\n",
		colorBold, colorYellow, colorReset)
	fmt.Printf("%s%s%s\n",
		colorYellow,
		strings.Repeat("=", 20),
		colorReset)

	scenarioCount := 0
	for _, item := range menuItems {
		if !item.interactive {
			scenarioCount++
		}
	}
	for i := 0; i < scenarioCount; i++ {
		item := menuItems[i]
		fmt.Printf("  %s%d.%s %s%s%s - %s\n",
			colorCyan, i+1, colorReset,
			colorWhite, item.name, colorReset,
			item.description)
	}

	fmt.Println()
	fmt.Printf("%s%sInteractive:%s\n",
		colorBold, colorYellow, colorReset)
	fmt.Printf("%s%s%s\n",
		colorYellow,
		strings.Repeat("-", 12),
		colorReset)
	for i := scenarioCount; i < len(menuItems); i++ {
		item := menuItems[i]
		fmt.Printf("  %s%d.%s %s%s%s - %s\n",
			colorCyan, i+1, colorReset,
			colorWhite, item.name, colorReset,
			item.description)
	}
	fmt.Println()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Printf(
					"\n%sGoodbye!%s\n",
					colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			fmt.Printf(
				"%sGoodbye!%s\n",
				colorGreen, colorReset)
			return nil
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 ||
			num > len(menuItems) {
			fmt.Printf(
				"%sInvalid selection. "+
					"Please enter 1-%d.%s\n\n",
				colorRed, len(menuItems), colorReset)
			continue
		}

		ctx, cancel := context.WithCancel(
			context.Background())

		sigCh := make(chan os.Signal, 1)
		signal.Notify(
			sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			fmt.Printf(
				"\n%sReceived interrupt, "+
					"cancelling...%s\n",
				colorYellow, colorReset)
			cancel()
		}()

		item := menuItems[num-1]
		config := testutil.InteractiveConfig()
		config.LogWriter = logFile

		coloredWriter := &ColoredWriter{w: os.Stdout}

		if item.interactive {
			err = runOwnIdea(ctx, rl, coloredWriter, config)
		} else {
			fmt.Printf("\n%sRunning scenario: %s%s\n",
				colorGreen, item.name, colorReset)
			_, err = item.run(ctx, coloredWriter, config)
		}
		if err != nil && err != readline.ErrInterrupt {
			fmt.Fprintf(os.Stderr,
				"%sError: %v%s\n",
				colorRed, err, colorReset)
		}

		signal.Stop(sigCh)
		cancel()

		fmt.Printf("\n%s%s%s\n\n",
			colorDim,
			strings.Repeat("-", 60),
			colorReset)
	}
}

// runOwnIdea prompts for session inputs and runs a live convergence
// session over the launch-email template.
func runOwnIdea(
	ctx context.Context,
	rl *readline.Instance,
	w io.Writer,
	config testutil.TestConfig,
) error {
	gen, err := testutil.CreateLiveGenerator()
	if err != nil {
		fmt.Printf(
			"%sLive generator unavailable: %v%s\n",
			colorRed, err, colorReset)
		return nil
	}

	tpl, err := email.EmailTemplate()
	if err != nil {
		return err
	}

	idea, err := promptString(rl, "Idea")
	if err != nil {
		return err
	}
	if idea == "" {
		fmt.Printf(
			"%sAn idea is required.%s\n",
			colorRed, colorReset)
		return nil
	}

	supporting, err := promptString(rl, "Supporting context (optional)")
	if err != nil {
		return err
	}

	maxRounds, err := promptInt(rl,
		"Max rounds", tpl.Policy.MaxRounds, 1, 10)
	if err != nil {
		return err
	}
	threshold, err := promptFloat(rl,
		"Score threshold", tpl.Policy.ScoreThreshold, 1, 10)
	if err != nil {
		return err
	}

	_, err = testutil.RunScenario(ctx, w, config,
		testutil.ScenarioConfig{
			Name:              "cli-interactive",
			HeaderTitle:       "CONVERGE YOUR OWN IDEA",
			Idea:              idea,
			Context:           supporting,
			Template:          tpl,
			Writer:            gen,
			Collaborator:      gen,
			WriterModel:       duet.ModelOpenAIGPT41Mini,
			CollaboratorModel: duet.ModelOpenAIGPT41Mini,
			MaxRounds:         maxRounds,
			ScoreThreshold:    threshold,
		})
	return err
}

// promptString prompts for a free-form line.
func promptString(
	rl *readline.Instance,
	label string,
) (string, error) {
	oldPrompt := rl.Config.Prompt
	rl.SetPrompt(
		colorCyan + label + ": " + colorReset)
	input, err := rl.Readline()
	rl.SetPrompt(oldPrompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// promptInt prompts for an integer value with a default,
// minimum, and maximum.
func promptInt(
	rl *readline.Instance,
	label string,
	defaultVal, minVal, maxVal int,
) (int, error) {
	for {
		oldPrompt := rl.Config.Prompt
		prompt := fmt.Sprintf(
			"%s  %s [%d]: %s",
			colorCyan, label, defaultVal, colorReset)
		rl.SetPrompt(prompt)
		input, err := rl.Readline()
		rl.SetPrompt(oldPrompt)
		if err != nil {
			return 0, err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return defaultVal, nil
		}

		val, err := strconv.Atoi(input)
		if err != nil || val < minVal || val > maxVal {
			fmt.Printf(
				"%sEnter a number between %d "+
					"and %d.%s\n",
				colorRed, minVal, maxVal, colorReset)
			continue
		}
		return val, nil
	}
}

// promptFloat prompts for a float value with a default,
// minimum, and maximum.
func promptFloat(
	rl *readline.Instance,
	label string,
	defaultVal, minVal, maxVal float64,
) (float64, error) {
	for {
		oldPrompt := rl.Config.Prompt
		prompt := fmt.Sprintf(
			"%s  %s [%g]: %s",
			colorCyan, label, defaultVal, colorReset)
		rl.SetPrompt(prompt)
		input, err := rl.Readline()
		rl.SetPrompt(oldPrompt)
		if err != nil {
			return 0, err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return defaultVal, nil
		}

		val, err := strconv.ParseFloat(input, 64)
		if err != nil || val < minVal || val > maxVal {
			fmt.Printf(
				"%sEnter a number between %g "+
					"and %g.%s\n",
				colorRed, minVal, maxVal, colorReset)
			continue
		}
		return val, nil
	}
}

// ColoredWriter wraps stdout and adds colors based on the
// session log's line patterns.
type ColoredWriter struct {
	w *os.File
}

func (c *ColoredWriter) Write(
	p []byte,
) (n int, err error) {
	text := string(p)

	switch {
	case strings.HasPrefix(text, ">>> ["):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorMagenta, text, colorReset)

	case strings.HasPrefix(text, "===="):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorYellow, text, colorReset)

	case strings.HasPrefix(text, "SESSION "):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s%s",
			colorBold, colorYellow, text, colorReset)

	case strings.HasPrefix(text, "ROUND "):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s%s",
			colorBold, colorMagenta, text, colorReset)

	case strings.HasPrefix(text, "----"):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorYellow, text, colorReset)

	case strings.HasPrefix(text, "--- "):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorYellow, text, colorReset)

	case strings.HasPrefix(text, "Stop reason:") ||
		strings.HasPrefix(text, "Stopped: "):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s%s",
			colorBold, colorGreen, text, colorReset)

	case strings.HasPrefix(text, "Tokens:") ||
		strings.HasPrefix(text, "Duration:"):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorDim, text, colorReset)

	case strings.HasPrefix(text, "Error"):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorRed, text, colorReset)

	case strings.HasPrefix(text, "+"):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorGreen, text, colorReset)

	case strings.HasPrefix(text, "-"):
		return fmt.Fprintf(os.Stdout,
			"%s%s%s",
			colorRed, text, colorReset)

	default:
		return os.Stdout.Write(p)
	}
}
