// rosterc 排班 DSL 编译器
// 主程序入口：读取规范，运行 C1-C9 流水线，输出任务结果
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rosterc/rosterc/internal/config"
	"github.com/rosterc/rosterc/pkg/jobstore"
	"github.com/rosterc/rosterc/pkg/logger"
	"github.com/rosterc/rosterc/pkg/orchestrator"
	"github.com/rosterc/rosterc/pkg/roster"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	validateOnly := flag.Bool("validate-only", false, "只运行 C1-C2 校验与归一化，不求解")
	specPath := flag.String("spec", "", "规范 JSON 文件路径（缺省读取标准输入）")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	fmt.Printf("rosterc 排班编译器 v%s\n", Version)
	fmt.Printf("Build: %s\n", BuildTime)
	fmt.Println()

	spec, err := readSpec(*specPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取规范失败: %v\n", err)
		os.Exit(1)
	}

	store := jobstore.NewMemory()
	orch := orchestrator.New(store, cfg.Lattice.MaxCells)

	if *validateOnly {
		ok, messages := orch.ValidateOnly(spec)
		printValidation(ok, messages)
		if !ok {
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Solver.MaxTimeSeconds+10)*time.Second)
	defer cancel()

	jobID, messages, err := orch.Submit(ctx, spec, cfg.Solver.MaxTimeSeconds, cfg.Solver.Workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "提交任务失败: %v\n", err)
		os.Exit(1)
	}
	if len(messages) > 0 {
		printValidation(false, messages)
		os.Exit(1)
	}

	job, err := store.Get(ctx, jobID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取任务记录失败: %v\n", err)
		os.Exit(1)
	}

	encoded, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "序列化任务记录失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))

	if job.Status == jobstore.StatusFailed {
		os.Exit(1)
	}
}

func readSpec(path string) (*roster.Spec, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var spec roster.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("解析规范 JSON 失败: %w", err)
	}
	return &spec, nil
}

func printValidation(ok bool, messages []string) {
	if ok {
		fmt.Println("校验通过")
		return
	}
	fmt.Fprintln(os.Stderr, "校验失败:")
	for _, m := range messages {
		fmt.Fprintf(os.Stderr, "  - %s\n", m)
	}
}
