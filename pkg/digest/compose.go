package digest

import (
	"fmt"
	"strings"
)

// Sections holds the rendered blocks of one digest.
type Sections struct {
	Classes   string
	Learning  string
	Deadlines string
	Events    string
}

// Build renders every section from the given routine data.
func (b *Builder) Build(in Input) Sections {
	return Sections{
		Classes:   b.Classes(in.Classes),
		Learning:  b.Learning(in.Learning),
		Deadlines: b.Deadlines(in.Deadlines),
		Events:    b.Events(in.Events),
	}
}

// Summary is the schedule part of the message. It is also the context handed
// to the advice provider.
func (s Sections) Summary() string {
	var sb strings.Builder
	sb.WriteString("\n")
	writeBlock(&sb, "🎓 *Classes*:", s.Classes)
	sb.WriteString("\n")
	writeBlock(&sb, "📚 *Self-Learning*:", s.Learning)
	sb.WriteString("\n")
	writeBlock(&sb, "📌 *Deadlines*:", s.Deadlines)
	sb.WriteString("\n")
	writeBlock(&sb, "🎯 *Special Events*:", s.Events)
	return sb.String()
}

func writeBlock(sb *strings.Builder, title, body string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
}

// Message is the final digest sent to the recipient.
type Message struct {
	Name    string
	Header  string
	Summary string
	Advice  string
	Tip     string
}

func (m Message) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("🗓️ *Good Morning %s! Here's your plan for today (%s):*\n\n", m.Name, m.Header))
	sb.WriteString(m.Summary)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("💡 *Gemini says*:\n\"%s\"\n\n", m.Advice))
	sb.WriteString(fmt.Sprintf("🌟 *Productivity Tip*:\n%s\n", m.Tip))
	return sb.String()
}
