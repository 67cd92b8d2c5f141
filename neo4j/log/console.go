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

package log

import (
	"fmt"
	"os"
	"time"
)

type Level int

const (
	ERROR   Level = 1
	WARNING Level = 2
	INFO    Level = 3
	DEBUG   Level = 4
)

const timeFormat = "2006-01-02 15:04:05.000"

// Console is the default Logger: writes to stderr, gated by level.
type Console struct {
	errors, warns, infos, debugs bool
}

func NewConsole(level Level) *Console {
	return &Console{
		errors: level >= ERROR,
		warns:  level >= WARNING,
		infos:  level >= INFO,
		debugs: level >= DEBUG,
	}
}

func (c *Console) Error(name, id string, err error) {
	if !c.errors {
		return
	}
	c.line("ERROR", name, id, err.Error())
}

func (c *Console) Errorf(name, id, msg string, args ...interface{}) {
	if !c.errors {
		return
	}
	c.line("ERROR", name, id, fmt.Sprintf(msg, args...))
}

func (c *Console) Warnf(name, id, msg string, args ...interface{}) {
	if !c.warns {
		return
	}
	c.line("WARN", name, id, fmt.Sprintf(msg, args...))
}

func (c *Console) Infof(name, id, msg string, args ...interface{}) {
	if !c.infos {
		return
	}
	c.line("INFO", name, id, fmt.Sprintf(msg, args...))
}

func (c *Console) Debugf(name, id, msg string, args ...interface{}) {
	if !c.debugs {
		return
	}
	c.line("DEBUG", name, id, fmt.Sprintf(msg, args...))
}

func (c *Console) line(level, name, id, msg string) {
	fmt.Fprintf(os.Stderr, "%s  %-5s  [%s %s] %s\n", time.Now().Format(timeFormat), level, name, id, msg)
}

// ConsoleBolt is the default BoltLogger: writes raw client/server wire
// traffic descriptions to stdout.
type ConsoleBolt struct{}

func (ConsoleBolt) LogClientMessage(context, msg string, args ...interface{}) {
	logBolt("C", context, msg, args)
}

func (ConsoleBolt) LogServerMessage(context, msg string, args ...interface{}) {
	logBolt("S", context, msg, args)
}

func logBolt(dir, context, msg string, args []interface{}) {
	id := ""
	if context != "" {
		id = fmt.Sprintf("[%s] ", context)
	}
	fmt.Fprintf(os.Stdout, "%s  BOLT  %s%s: %s\n", time.Now().Format(timeFormat), id, dir, fmt.Sprintf(msg, args...))
}
