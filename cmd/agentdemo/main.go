package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	agentdemo "github.com/prismworks-ai/agentdemo"
	"github.com/prismworks-ai/agentdemo/bank"
	"github.com/prismworks-ai/agentdemo/bank/store"
	"github.com/prismworks-ai/agentdemo/ecommerce"
	"github.com/prismworks-ai/agentdemo/greeter"
)

func main() {
	// Define command line flags
	chatCmd := flag.NewFlagSet("chat", flag.ExitOnError)

	agentName := chatCmd.String("agent", "bank", "Agent to chat with: bank, ecommerce or greeter")
	dbDSN := chatCmd.String("db", "", "Database DSN for the bank agent (defaults to AGENTDEMO_DB)")
	seed := chatCmd.Bool("seed", false, "Seed the bank database with sample data")
	model := chatCmd.String("model", "", "Model name (defaults to AGENTDEMO_MODEL)")

	if len(os.Args) < 2 {
		fmt.Println("Expected 'chat' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "chat":
		chatCmd.Parse(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Println("Expected 'chat' subcommand")
		os.Exit(1)
	}

	cfg := agentdemo.LoadConfig()
	if *dbDSN == "" {
		*dbDSN = cfg.DatabaseDSN
	}
	if *model == "" {
		*model = cfg.Model
	}
	if cfg.OpenAIAPIKey == "" {
		fmt.Println("Error: OPENAI_API_KEY is required")
		os.Exit(1)
	}

	agent, cleanup, err := buildAgent(*agentName, *dbDSN, *seed)
	if err != nil {
		log.Fatalf("Failed to build agent: %v", err)
	}
	defer cleanup()

	llm := agentdemo.NewLLM(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, *model)
	session := agentdemo.NewSession(context.Background(), llm, agent)
	defer session.Close()

	fmt.Printf("Chatting with the %s agent. Type 'exit' to quit.\n", *agentName)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		session.In(line)
		for {
			msg := session.Out()
			switch msg.Type {
			case agentdemo.MessageTypePartialText:
				fmt.Print(msg.Content)
			case agentdemo.MessageTypeStatus:
				fmt.Printf("[%s]\n", msg.Content)
			case agentdemo.MessageTypeError:
				fmt.Printf("\nerror: %s\n", msg.Content)
			}
			if msg.Type == agentdemo.MessageTypeEnd {
				fmt.Println()
				break
			}
		}
	}
}

// buildAgent wires the requested demo agent. The returned cleanup releases
// whatever resources the agent opened.
func buildAgent(name, dsn string, seed bool) (*agentdemo.Agent, func(), error) {
	switch name {
	case "bank":
		st, err := store.Open(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := st.Migrate(); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		if seed {
			if err := st.Seed(context.Background()); err != nil {
				st.Close()
				return nil, nil, fmt.Errorf("seed: %w", err)
			}
		}
		return bank.NewAgent(st), func() { st.Close() }, nil
	case "ecommerce":
		return ecommerce.NewAgent(ecommerce.NewStore()), func() {}, nil
	case "greeter":
		return greeter.NewAgent(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown agent %q (expected bank, ecommerce or greeter)", name)
	}
}
