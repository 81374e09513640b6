// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"code.hybscloud.com/chain"
	"code.hybscloud.com/chain/chainlog"
	"code.hybscloud.com/chain/chainmetrics"
	"code.hybscloud.com/chain/internal/config"
	"code.hybscloud.com/chain/internal/sample"
	"code.hybscloud.com/chain/internal/tracing"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// result is one output row.
type result struct {
	Input  int    `json:"input" yaml:"input"`
	Output *int   `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRunCmd(a *app) *cobra.Command {
	var (
		inputs []int
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the chain over each input",
		Example: `  chaindemo run --input 1,2,3
  chaindemo run --strict --trace --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			compute := sample.Compute
			if strict {
				compute = sample.ComputeStrict
			}
			return a.run(cmd.Context(), cmd.OutOrStdout(), inputs, compute)
		},
	}
	cmd.Flags().IntSliceVar(&inputs, "input", []int{1, 2, 3, 4, 5}, "comma-separated input values")
	cmd.Flags().BoolVar(&strict, "strict", false, "replace multiply-by-two with a step that fails on odd values")
	cmd.Flags().Bool("trace", false, "wrap each step in a diagnostic span")
	cmd.Flags().Bool("metrics", false, "print step metrics in Prometheus text format")
	cmd.Flags().String("otlp-endpoint", "", "export spans to this OTLP/HTTP endpoint (host:port)")
	cmd.Flags().String("service-name", "chaindemo", "OpenTelemetry service name")
	return cmd
}

func (a *app) run(ctx context.Context, w io.Writer, inputs []int, compute func(context.Context, int) (int, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := a.logger.With(zap.String("run_id", uuid.NewString()))

	provider, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    a.cfg.ServiceName,
		ServiceVersion: version,
		OTLPEndpoint:   a.cfg.OTLPEndpoint,
		Enabled:        a.cfg.Trace,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	var instruments []chain.Instrument
	if a.cfg.Trace {
		instruments = append(instruments, chain.Tracer(provider.Tracer()), chainlog.New(logger))
	}
	reg := prometheus.NewRegistry()
	if a.cfg.Metrics {
		m, err := chainmetrics.New(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		instruments = append(instruments, m)
	}
	if ins := chain.Multi(instruments...); ins != nil {
		ctx = chain.WithInstrument(ctx, ins)
	}

	logger.Info("Running chain", zap.Ints("inputs", inputs), zap.Bool("trace", a.cfg.Trace))
	rows := make([]result, 0, len(inputs))
	for _, in := range inputs {
		r := result{Input: in}
		out, err := compute(ctx, in)
		if err != nil {
			logger.Warn("Chain failed", zap.Int("input", in), zap.Error(err))
			r.Error = err.Error()
		} else {
			r.Output = &out
		}
		rows = append(rows, r)
	}

	if err := render(w, a.cfg.Output, rows); err != nil {
		return err
	}
	if a.cfg.Metrics {
		return writeMetrics(w, reg)
	}
	return nil
}

func render(w io.Writer, format string, rows []result) error {
	switch format {
	case config.OutputJSON:
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case config.OutputYAML:
		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		table := tablewriter.NewWriter(w)
		table.Header("Input", "Output", "Error")
		for _, r := range rows {
			output := "-"
			if r.Output != nil {
				output = strconv.Itoa(*r.Output)
			}
			if err := table.Append(strconv.Itoa(r.Input), output, r.Error); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}
		return table.Render()
	}
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	encoder := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
