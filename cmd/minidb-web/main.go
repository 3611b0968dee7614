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
Package main is the MiniDB web console.

The console serves a small HTML UI over an in-process database:

	/            table list and a raw query form
	/table       browse one table's rows (direct table access)
	/query       execute a statement and render its Result

All statements flow through the executor's Execute entry point; only
the table browser reads rows directly, which the engine allows as a
secondary access path. The database is in-memory and per-process: a
restart starts empty (plus the demo schema when seeding is enabled).
*/
package main

import (
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"

	"minidb/internal/config"
	"minidb/internal/logging"
	"minidb/internal/sql"
	"minidb/internal/storage"
)

// demoStatements is the sample schema seeded at startup, exercising
// every statement kind including the join.
var demoStatements = []string{
	"CREATE TABLE users (id INT PRIMARY KEY, name TEXT, email TEXT UNIQUE, age INT)",
	"CREATE TABLE products (id INT PRIMARY KEY, name TEXT, price FLOAT, stock INT)",
	"CREATE TABLE orders (id INT PRIMARY KEY, user_id INT, product_id INT, quantity INT)",
	"INSERT INTO users VALUES (1, 'John Doe', 'john@example.com', 30)",
	"INSERT INTO users VALUES (2, 'Jane Smith', 'jane@example.com', 25)",
	"INSERT INTO products VALUES (1, 'Laptop', 999.99, 10)",
	"INSERT INTO products VALUES (2, 'Mouse', 25.50, 50)",
	"INSERT INTO orders VALUES (1, 1, 1, 2)",
	"INSERT INTO orders VALUES (2, 2, 2, 1)",
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<title>MiniDB Console</title>
<style>
  body { font-family: sans-serif; margin: 2em; color: #222; }
  table { border-collapse: collapse; margin: 1em 0; }
  th, td { border: 1px solid #bbb; padding: 4px 10px; text-align: left; }
  th { background: #eee; }
  .ok { color: #1a7f37; }
  .err { color: #b42318; }
  textarea { width: 100%; max-width: 48em; }
</style>
</head>
<body>
<h1>MiniDB Console</h1>

<h2>Tables</h2>
{{if .Tables}}
<ul>
{{range .Tables}}<li><a href="/table?name={{.}}">{{.}}</a></li>
{{end}}</ul>
{{else}}<p>No tables yet.</p>{{end}}

<h2>Query</h2>
<form method="post" action="/query">
<textarea name="q" rows="3" placeholder="SELECT * FROM users">{{.Query}}</textarea><br>
<button type="submit">Execute</button>
</form>

{{if .Message}}
<p class="{{if .Success}}ok{{else}}err{{end}}">{{.Message}}</p>
{{end}}

{{if .Columns}}
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

// pageData feeds the single page template.
type pageData struct {
	Tables  []string
	Query   string
	Message string
	Success bool
	Columns []string
	Rows    [][]string
}

// console bundles the handlers with their shared state.
type console struct {
	db     *storage.Database
	exec   *sql.Executor
	logger *logging.Logger
}

// render fills in the table list and writes the page.
func (c *console) render(w http.ResponseWriter, data pageData) {
	data.Tables = c.db.TableNames()
	if err := pageTemplate.Execute(w, data); err != nil {
		c.logger.Error("Template render failed", "error", err)
	}
}

// handleIndex serves the table list and an empty query form.
func (c *console) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	c.render(w, pageData{})
}

// handleQuery executes a posted statement and renders its Result.
func (c *console) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	query := r.FormValue("q")
	result := c.exec.Execute(query)
	c.logger.Info("Query executed", "success", result.Success)

	c.render(w, pageData{
		Query:   query,
		Message: result.Message,
		Success: result.Success,
		Columns: result.Columns,
		Rows:    formatRows(result.Data),
	})
}

// handleTable browses one table's raw rows, the direct access path.
func (c *console) handleTable(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	t, ok := c.db.Table(name)
	if !ok {
		c.render(w, pageData{Message: fmt.Sprintf("Table '%s' does not exist", name)})
		return
	}

	columns := t.ColumnNames()
	rows := make([][]string, 0, t.RowCount())
	for _, row := range t.Rows() {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row[col].Format()
		}
		rows = append(rows, cells)
	}

	c.render(w, pageData{
		Message: fmt.Sprintf("Table '%s': %d row(s)", name, len(rows)),
		Success: true,
		Columns: columns,
		Rows:    rows,
	})
}

// formatRows renders result values for HTML display.
func formatRows(data [][]storage.Value) [][]string {
	rows := make([][]string, len(data))
	for i, row := range data {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Format()
		}
		rows[i] = cells
	}
	return rows
}

func main() {
	configPath := flag.String("c", "", "path to a minidb.yaml config file")
	listen := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minidb-web: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	logging.SetJSONMode(cfg.LogJSON)

	addr := cfg.Web.Listen
	if *listen != "" {
		addr = *listen
	}

	logger := logging.NewLogger("web")
	db := storage.NewDatabase()
	exec := sql.NewExecutor(db)

	if cfg.Web.SeedDemoData {
		for _, stmt := range demoStatements {
			if result := exec.Execute(stmt); !result.Success {
				logger.Warn("Demo statement failed", "statement", stmt, "message", result.Message)
			}
		}
		logger.Info("Demo data seeded", "tables", len(db.TableNames()))
	}

	c := &console{db: db, exec: exec, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/", c.handleIndex)
	mux.HandleFunc("/query", c.handleQuery)
	mux.HandleFunc("/table", c.handleTable)

	logger.Info("Web console listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
