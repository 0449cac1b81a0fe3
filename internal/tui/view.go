package tui

import (
	"fmt"
	"strings"

	"github.com/iamruinous/pica-emulator/internal/world"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if !m.ready {
		return fmt.Sprintf("%s Initializing...\n", m.spinner.View())
	}

	var b strings.Builder

	title := titleStyle.Render("pica emulator")
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderEntityTable())
	b.WriteString("\n")

	eventsBox := boxStyle.Width(m.width - 4).Render(m.viewport.View())
	b.WriteString(eventsBox)
	b.WriteString("\n")

	if m.errorMessage != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errorMessage))
		b.WriteString("\n")
	}

	help := helpStyle.Render("q: quit • c: clear event log • ↑/↓: scroll")
	b.WriteString(help)

	return b.String()
}

func (m Model) renderStatusBar() string {
	devices, anchors := 0, 0
	for _, e := range m.entities {
		if e.Category == world.CategoryDevice {
			devices++
		} else {
			anchors++
		}
	}

	status := StatusIndicator(true)
	devInfo := statLabelStyle.Render(" | Devices: ") + statValueStyle.Render(fmt.Sprintf("%d", devices))
	anchorInfo := statLabelStyle.Render(" | Anchors: ") + statValueStyle.Render(fmt.Sprintf("%d", anchors))
	updated := statLabelStyle.Render(" | Last update: ") + statValueStyle.Render(m.lastUpdate.Format("15:04:05"))

	return status + devInfo + anchorInfo + updated
}

func (m Model) renderEntityTable() string {
	if len(m.entities) == 0 {
		return statLabelStyle.Render("No devices or anchors in the world yet.")
	}

	var b strings.Builder
	b.WriteString(statLabelStyle.Render(fmt.Sprintf("%-12s %-8s %6s %6s %6s\n", "MAC", "KIND", "X", "Y", "Z")))
	for _, e := range m.entities {
		kind := "anchor"
		if e.Category == world.CategoryDevice {
			kind = "device"
		}
		b.WriteString(fmt.Sprintf("%-12s %-8s %6d %6d %6d\n",
			e.MacAddress.String(), kind, e.Pose.X, e.Pose.Y, e.Pose.Z))
	}
	return b.String()
}

func (m Model) renderEvents() string {
	if len(m.events) == 0 {
		return statLabelStyle.Render("No events yet. Waiting for world activity...")
	}

	var b strings.Builder
	for _, e := range m.events {
		b.WriteString(m.renderEvent(e))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEvent(e EventDisplay) string {
	timeStr := messageTimeStyle.Render(e.Time.Format("15:04:05"))
	kind := messageTypeStyle.Render(fmt.Sprintf("[%s]", e.Kind))
	mac := messageFromStyle.Render(e.Mac)

	neighbor := ""
	if e.Neighbor != "" {
		neighbor = statLabelStyle.Render(" -> ") + messageFromStyle.Render(e.Neighbor)
	}

	return timeStr + " " + kind + " " + mac + neighbor
}
