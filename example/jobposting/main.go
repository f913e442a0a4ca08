package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino-ext/components/model/openai"

	"github.com/hirekit/slotflow"
	"github.com/hirekit/slotflow/extract"
	"github.com/hirekit/slotflow/handoff"
	"github.com/hirekit/slotflow/schema"
)

func main() {
	conf := flag.String("config", "config.json", "path to config file")
	flag.Parse()
	config, err := loadConfig(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := startApp(context.Background(), config); err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, config *Config) error {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	extractor := extract.Extractor(extract.NewLocalExtractor())
	if config.APIKey != "" {
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  config.APIKey,
			Model:   config.Model,
			BaseURL: config.BaseURL,
		})
		if err != nil {
			return err
		}
		toolExtractor, err := extract.NewToolExtractor(cm)
		if err != nil {
			return err
		}
		extractor = extract.NewFallbackExtractor(toolExtractor, extract.NewLocalExtractor())
	}

	engine := slotflow.NewEngine(
		slotflow.WithExtractor(extractor),
		slotflow.WithActionHandler(func(sessionID string, action handoff.Action) {
			fmt.Printf("\n[이동] %s (%s)\n", action.TargetHint, action.Kind)
		}),
	)

	sessionID, err := engine.StartSession(ctx, schema.FormJobPosting)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("채용 공고 작성을 도와드릴게요. 어떤 직무를 채용하시나요? (리셋: /reset, 바로 이동: /go)")
	for {
		fmt.Print("사용자: ")
		input, rErr := reader.ReadString('\n')
		if rErr != nil {
			fmt.Println("입력이 종료되었습니다.")
			return engine.EndSession(ctx, sessionID)
		}
		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "/reset":
			if err := engine.ResetSession(ctx, sessionID); err != nil {
				return err
			}
			fmt.Println("처음부터 다시 시작합니다.")
			continue
		case "/go":
			fired, fErr := engine.FireNow(ctx, sessionID)
			if fErr != nil {
				return fErr
			}
			if !fired {
				fmt.Println("예약된 이동이 없습니다.")
			}
			continue
		}

		result, err := engine.SubmitUtterance(ctx, sessionID, input)
		if err != nil {
			return err
		}
		fmt.Printf("\n도우미: %s\n", result.FollowUpMessage)
		if len(result.Suggestions) > 0 {
			fmt.Printf("추천: %s\n", strings.Join(result.Suggestions, " / "))
		}
		if result.Done {
			data, mErr := sonic.MarshalIndent(result.Record, "", "  ")
			if mErr != nil {
				return mErr
			}
			fmt.Printf("완성된 공고 정보:\n%s\n", string(data))
		}
		fmt.Println("======")
	}
}
