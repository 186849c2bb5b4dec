package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/agent"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

var (
	chatLatexOut string
	chatVerbose  bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run the resume builder interactively in the terminal",
	Long: `Start a local conversation loop against an in-memory engine, without the
HTTP layer. Useful for development and for one-off resume generation.

For multi-line input (your resume or a job description), open a block
with a line containing only "<<<" and close it with "EOF". Type "quit"
to exit.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatLatexOut, "latex-out", "", "Write the final LaTeX source to this file")
	chatCmd.Flags().BoolVarP(&chatVerbose, "verbose", "v", false, "Print extracted profile, job analysis and match details")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	states := agent.NewMemoryStateStore()
	engine := &agent.Engine{
		LLM:      client,
		States:   states,
		Renderer: rendering.NewRenderer(cfg.TemplatePath),
		Compiler: &validation.Compiler{OutputDir: cfg.OutputDir},
		Counter:  validation.PageCounter{},
		Ingestor: &ingestion.Ingestor{},
	}
	printer := observability.NewPrinter(os.Stdout)

	fmt.Println("Resume builder (local). Open multi-line input with <<< and close with EOF; type quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	threadID := ""
	result, err := engine.HandleTurn(ctx, threadID, "", true, "hello")
	if err != nil {
		return err
	}
	threadID = result.ThreadID
	fmt.Printf("\n%s\n", result.Response)

	for {
		fmt.Print("\n> ")
		message, ok := readMessage(scanner)
		if !ok || strings.EqualFold(message, "quit") {
			fmt.Println("Bye!")
			return nil
		}
		if strings.TrimSpace(message) == "" {
			continue
		}

		result, err = engine.HandleTurn(ctx, threadID, "", true, message)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", result.Response)

		if chatVerbose && result.Stage == types.StageComplete {
			if state, err := states.Get(ctx, threadID); err == nil && state != nil {
				printer.PrintProfile(state.ProfileData)
				printer.PrintJobAnalysis(state.JobAnalysis)
				if state.JobAnalysis != nil {
					printer.PrintMatchResult(&types.MatchResult{
						MatchedKeywords: state.MatchedKeywords,
						ATSScore:        state.ATSScore,
						TotalKeywords:   len(state.JobAnalysis.AllKeywords()),
					})
				}
			}
		}

		if result.Stage == types.StageComplete && result.LaTeXCode != "" && chatLatexOut != "" {
			if err := os.WriteFile(chatLatexOut, []byte(result.LaTeXCode), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", chatLatexOut, err)
			} else {
				fmt.Printf("\nLaTeX source written to %s\n", chatLatexOut)
			}
		}
	}
}

// readMessage reads either a single line or, when the input spans multiple
// lines, everything up to a line containing only "EOF".
func readMessage(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	first := scanner.Text()
	if strings.TrimSpace(first) != "<<<" {
		return first, true
	}

	// "<<<" opens a multi-line block closed by "EOF".
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "EOF" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), true
}
