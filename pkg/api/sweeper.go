// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/semcmp/pkg/server"
	"github.com/NVIDIA/semcmp/pkg/session"
)

// Sweeper returns a worker that evicts idle sessions every interval until
// its context is cancelled. A non-positive interval disables sweeping; Get
// still refuses expired sessions.
func Sweeper(store *session.Store, clk clock.WithTicker, interval time.Duration) server.Worker {
	return func(ctx context.Context) error {
		if interval <= 0 {
			<-ctx.Done()
			return nil
		}

		t := clk.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C():
				if n := store.Sweep(); n > 0 {
					sessionsEvicted.Add(float64(n))
					slog.Debug("swept idle sessions", "evicted", n)
				}
				sessionsActive.Set(float64(store.Len()))
			}
		}
	}
}
