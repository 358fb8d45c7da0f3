// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/hammer"
)

// serveMetrics exposes the registry on /metrics at addr until ctx is done.
func (a *app) serveMetrics(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("metrics server: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdown)
	}()

	glog.Infof("serving metrics on %s/metrics", l.Addr())

	return nil
}

func hammerCommand(a *app) *cobra.Command {
	var c hammer.Config

	cmd := &cobra.Command{
		Use:   "hammer",
		Short: "Measure prove and verify throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if a.cfg.Metrics.Listen != "" {
				if err := a.serveMetrics(ctx, a.cfg.Metrics.Listen); err != nil {
					return err
				}
			}

			s, err := a.scheme()
			if err != nil {
				return err
			}

			sk, err := ecvrf.KeyGen()
			if err != nil {
				return err
			}
			defer sk.Zeroize()

			report, err := hammer.Run(ctx, s, sk, c)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Suite:           %s\n%s", s.Suite(), report)

			return nil
		},
	}

	cmd.Flags().IntVar(&c.Workers, "workers", 4, "number of concurrent workers")
	cmd.Flags().IntVar(&c.QPS, "qps", 0, "maximum operations per second, 0 for no limit")
	cmd.Flags().IntVar(&c.Count, "count", 1000, "number of prove and verify operations")
	cmd.Flags().IntVar(&c.MessageSize, "size", 32, "length of the random inputs")
	cmd.Flags().DurationVar(&c.Duration, "duration", 0, "stop after this long, 0 for no limit")

	return cmd
}
