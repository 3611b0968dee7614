/*
 * Copyright (c) 2026 The MiniDB Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package main is the MiniDB interactive shell.

The shell is a REPL over an in-process database: it reads one statement
per line, hands it to the executor, and renders the Result. The
database lives for the length of the session and is gone on exit;
MiniDB has no persistence.

Command Types:
==============

 1. Local commands (prefixed with \):
    - \q or \quit : exit the shell
    - \h or \help : display help
    - \d          : list tables
    - \d <table>  : show a table's columns

 2. SQL statements, one per line:
    CREATE TABLE, INSERT INTO, SELECT, UPDATE, DELETE FROM

Example session:

	minidb> CREATE TABLE users (id INT PRIMARY KEY, name TEXT)
	Table 'users' created successfully
	minidb> INSERT INTO users VALUES (1, 'Alice')
	Inserted 1 row into 'users'
	minidb> SELECT * FROM users
	 id | name
	----+------
	 1  | Alice
	(1 rows)
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"minidb/internal/banner"
	"minidb/internal/config"
	"minidb/internal/logging"
	"minidb/internal/sql"
	"minidb/internal/storage"
)

// isTerminal returns true if stdin is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func main() {
	configPath := flag.String("c", "", "path to a minidb.yaml config file")
	execute := flag.String("e", "", "execute one statement and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minidb-shell: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	logging.SetGlobalOutput(os.Stderr)
	logging.SetJSONMode(cfg.LogJSON)

	db := storage.NewDatabase()
	exec := sql.NewExecutor(db)

	if *execute != "" {
		result := exec.Execute(*execute)
		fmt.Print(renderResult(result))
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	if isTerminal() {
		banner.Fprint(os.Stdout)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Shell.Prompt,
		HistoryFile:     config.ExpandHome(cfg.Shell.HistoryFile),
		InterruptPrompt: "^C",
		EOFPrompt:       "\\q",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "minidb-shell: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "minidb-shell: %v\n", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "\\") {
			if handleLocalCommand(line, db) {
				return
			}
			continue
		}

		fmt.Print(renderResult(exec.Execute(line)))
	}
}

// handleLocalCommand runs a backslash command. Returns true on quit.
func handleLocalCommand(line string, db *storage.Database) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "\\q", "\\quit":
		return true

	case "\\h", "\\help":
		fmt.Println("Local commands:")
		fmt.Println("  \\q, \\quit    exit the shell")
		fmt.Println("  \\h, \\help    show this help")
		fmt.Println("  \\d [table]   list tables, or show a table's columns")
		fmt.Println()
		fmt.Println("Statements:")
		fmt.Println("  CREATE TABLE <name> (<col> <type> [PRIMARY KEY] [UNIQUE], ...)")
		fmt.Println("  INSERT INTO <name> VALUES (<v1>, <v2>, ...)")
		fmt.Println("  SELECT <*|cols> FROM <name> [WHERE <col> = <value>]")
		fmt.Println("  SELECT <*|cols> FROM <t1> JOIN <t2> ON <t1>.<c> = <t2>.<c>")
		fmt.Println("  UPDATE <name> SET <col>=<value> [, ...] [WHERE <col> = <value>]")
		fmt.Println("  DELETE FROM <name> [WHERE <col> = <value>]")

	case "\\d":
		if len(fields) > 1 {
			describeTable(db, fields[1])
		} else {
			names := db.TableNames()
			if len(names) == 0 {
				fmt.Println("No tables.")
			}
			for _, name := range names {
				fmt.Println(name)
			}
		}

	default:
		fmt.Printf("Unknown command %s, try \\h\n", fields[0])
	}
	return false
}

// describeTable prints a table's schema.
func describeTable(db *storage.Database, name string) {
	t, ok := db.Table(name)
	if !ok {
		fmt.Printf("Table '%s' does not exist\n", name)
		return
	}
	fmt.Printf("Table %s (%d rows)\n", t.Name, t.RowCount())
	for _, col := range t.Columns {
		suffix := ""
		if col.Name == t.PrimaryKey {
			suffix = " PRIMARY KEY"
		}
		fmt.Printf("  %s %s%s\n", col.Name, col.Type, suffix)
	}
}

// renderResult formats a Result for terminal display. SELECT results
// render as an aligned table with a row-count footer; everything else
// prints its message.
func renderResult(r storage.Result) string {
	if !r.Success {
		return "ERROR: " + r.Message + "\n"
	}
	if r.Columns == nil {
		return r.Message + "\n"
	}

	widths := make([]int, len(r.Columns))
	for i, col := range r.Columns {
		widths[i] = len(col)
	}
	cells := make([][]string, len(r.Data))
	for ri, row := range r.Data {
		cells[ri] = make([]string, len(row))
		for ci, v := range row {
			s := v.Format()
			cells[ri][ci] = s
			if ci < len(widths) && len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	var b strings.Builder
	for i, col := range r.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], col)
	}
	b.WriteString("\n")
	for i, w := range widths {
		if i > 0 {
			b.WriteString("-+-")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range cells {
		for i, cell := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "(%d rows)\n", len(r.Data))
	return b.String()
}
