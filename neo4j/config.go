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

package neo4j

import (
	"time"

	"github.com/Maxino22/neo4j-ex/neo4j/internal/pool"
	"github.com/Maxino22/neo4j-ex/neo4j/log"
)

// Config holds every driver-level option. It is assembled through
// functional options, one per tunable.
type Config struct {
	Auth               AuthToken
	UserAgent          string
	ConnectionTimeout  time.Duration
	QueryTimeout       time.Duration
	PoolSize           int
	MaxOverflow        int
	Strategy           pool.Strategy
	BatchSize          int
	Logger             log.Logger
	BoltLogger         log.BoltLogger
}

func defaultConfig() *Config {
	return &Config{
		Auth:              NoAuth(),
		UserAgent:         "neo4j-ex/1.0",
		ConnectionTimeout: 15 * time.Second,
		QueryTimeout:      30 * time.Second,
		PoolSize:          10,
		MaxOverflow:       5,
		Strategy:          pool.FIFO,
		BatchSize:         1000,
		Logger:            log.NewConsole(log.WARNING),
	}
}

// Option configures a Driver at construction time.
type Option func(*Config)

func WithAuth(auth AuthToken) Option {
	return func(c *Config) { c.Auth = auth }
}

func WithUserAgent(agent string) Option {
	return func(c *Config) { c.UserAgent = agent }
}

func WithConnectionTimeout(d time.Duration) Option {
	return func(c *Config) { c.ConnectionTimeout = d }
}

func WithQueryTimeout(d time.Duration) Option {
	return func(c *Config) { c.QueryTimeout = d }
}

func WithPoolSize(n int) Option {
	return func(c *Config) { c.PoolSize = n }
}

func WithMaxOverflow(k int) Option {
	return func(c *Config) { c.MaxOverflow = k }
}

func WithStrategy(s pool.Strategy) Option {
	return func(c *Config) { c.Strategy = s }
}

func WithBatchSize(n int) Option {
	return func(c *Config) { c.BatchSize = n }
}

func WithLogger(l log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func WithBoltLogger(l log.BoltLogger) Option {
	return func(c *Config) { c.BoltLogger = l }
}
