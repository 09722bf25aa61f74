package response

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	"alert-srv/pkg/discord"
	"alert-srv/pkg/scope"
	"alert-srv/pkg/tracing"

	"github.com/gin-gonic/gin"
)

const (
	stackDepth           = 32
	maxReportedBodyLen   = 1024
	DiscordMaxMessageLen = 4000
)

// bugReport is what an internal error tells the on-call channel. Headers are
// left out so bearer tokens never leave the service.
type bugReport struct {
	TraceID  string
	Method   string
	Route    string
	Query    string
	TenantID string
	Body     string
	Err      string
	Stack    []string
}

func newBugReport(c *gin.Context, err error) bugReport {
	r := bugReport{
		Err:   err.Error(),
		Route: c.FullPath(),
		Stack: callers(),
	}
	if c.Request == nil {
		return r
	}
	r.TraceID = tracing.TraceID(c.Request.Context())
	r.Method = c.Request.Method
	if r.Route == "" {
		r.Route = c.Request.URL.Path
	}
	r.Query = c.Request.URL.RawQuery
	r.TenantID = c.GetString(scope.GinTenantKey)
	if c.Request.Body != nil {
		raw, readErr := io.ReadAll(io.LimitReader(c.Request.Body, maxReportedBodyLen))
		if readErr == nil {
			r.Body = string(raw)
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		}
	}
	return r
}

func (r bugReport) String() string {
	var sb strings.Builder
	sb.WriteString("**alert-srv internal error**\n")
	fmt.Fprintf(&sb, "`%s %s`", r.Method, r.Route)
	if r.Query != "" {
		fmt.Fprintf(&sb, " ?%s", r.Query)
	}
	sb.WriteString("\n")
	if r.TraceID != "" {
		fmt.Fprintf(&sb, "trace: %s\n", r.TraceID)
	}
	if r.TenantID != "" {
		fmt.Fprintf(&sb, "tenant: %s\n", r.TenantID)
	}
	fmt.Fprintf(&sb, "error: %s\n", r.Err)
	if r.Body != "" {
		fmt.Fprintf(&sb, "body:\n```json\n%s\n```\n", r.Body)
	}
	if len(r.Stack) > 0 {
		sb.WriteString("stack:\n```\n")
		for _, frame := range r.Stack {
			sb.WriteString(frame + "\n")
		}
		sb.WriteString("```")
	}
	return sb.String()
}

func callers() []string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(4, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var out []string
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") {
			out = append(out, fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line))
		}
		if !more {
			break
		}
	}
	return out
}

func reportBug(d discord.IDiscord, r bugReport) {
	msg := r.String()
	go func() {
		for _, chunk := range splitMessageForDiscord(msg) {
			if err := d.ReportBug(context.Background(), chunk); err != nil {
				log.Printf("pkg.response.reportBug: %v", err)
			}
		}
	}()
}

// splitMessageForDiscord cuts msg on line boundaries into chunks Discord accepts.
// A single line longer than the limit is cut mid-line.
func splitMessageForDiscord(msg string) []string {
	var chunks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}
	for _, line := range strings.Split(msg, "\n") {
		for len(line) > DiscordMaxMessageLen {
			flush()
			chunks = append(chunks, line[:DiscordMaxMessageLen])
			line = line[DiscordMaxMessageLen:]
		}
		sep := 0
		if cur.Len() > 0 {
			sep = 1
		}
		if cur.Len()+sep+len(line) > DiscordMaxMessageLen {
			flush()
			sep = 0
		}
		if sep == 1 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
	}
	flush()
	return chunks
}
