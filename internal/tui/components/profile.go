package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Setting identifies a profile row
type Setting int

const (
	SettingAutoplay Setting = iota
	SettingDownloadQuality
	SettingNotifications
	SettingEmulation
)

var settingOrder = []Setting{SettingAutoplay, SettingDownloadQuality, SettingNotifications, SettingEmulation}

// DownloadQualities are the selectable download tiers
var DownloadQualities = []string{"HD", "4K", "SD"}

// EmulationTargets are the selectable device-emulation values; "" is off
var EmulationTargets = []string{"", "ios", "android"}

// Profile is the settings screen. Only device emulation outlives the
// session; the app persists it when it changes.
type Profile struct {
	autoplay      bool
	notifications bool
	quality       int
	emulation     int
	cursor        int
	version       string
	persistent    bool
	width         int
	height        int
}

// NewProfile creates the settings screen with stock values
func NewProfile(emulation, version string) Profile {
	p := Profile{
		autoplay:      true,
		notifications: true,
		version:       version,
	}
	p.SetEmulation(emulation)
	return p
}

// SetSize updates the component dimensions
func (p *Profile) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetPersistent records whether the emulation preference survives restarts
func (p *Profile) SetPersistent(persistent bool) {
	p.persistent = persistent
}

// MoveUp moves the cursor up
func (p *Profile) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the cursor down
func (p *Profile) MoveDown() {
	if p.cursor < len(settingOrder)-1 {
		p.cursor++
	}
}

// Current returns the setting under the cursor
func (p Profile) Current() Setting {
	return settingOrder[p.cursor]
}

// Activate toggles or cycles the current setting and returns it
func (p *Profile) Activate() Setting {
	s := p.Current()
	switch s {
	case SettingAutoplay:
		p.autoplay = !p.autoplay
	case SettingNotifications:
		p.notifications = !p.notifications
	case SettingDownloadQuality:
		p.quality = (p.quality + 1) % len(DownloadQualities)
	case SettingEmulation:
		p.emulation = (p.emulation + 1) % len(EmulationTargets)
	}
	return s
}

// Autoplay reports whether titles start playing once loaded
func (p Profile) Autoplay() bool { return p.autoplay }

// Notifications reports whether push notifications are on
func (p Profile) Notifications() bool { return p.notifications }

// DownloadQuality returns the selected download tier
func (p Profile) DownloadQuality() string { return DownloadQualities[p.quality] }

// Emulation returns the selected device emulation, "" when off
func (p Profile) Emulation() string { return EmulationTargets[p.emulation] }

// SetEmulation selects a device; unknown values select off
func (p *Profile) SetEmulation(device string) {
	p.emulation = 0
	for i, t := range EmulationTargets {
		if t == device {
			p.emulation = i
		}
	}
}

// View renders the component
func (p Profile) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Profile"))
	b.WriteString("\n\n")
	b.WriteString(styles.TitleStyle.Render("John Doe"))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("john.doe@example.com"))
	b.WriteString("\n")

	b.WriteString(styles.SectionStyle.Render("Playback"))
	b.WriteString("\n")
	b.WriteString(p.renderRow(SettingAutoplay, "Autoplay", onOff(p.autoplay)))
	b.WriteString(p.renderRow(SettingDownloadQuality, "Download Quality", p.DownloadQuality()))

	b.WriteString(styles.SectionStyle.Render("Notifications"))
	b.WriteString("\n")
	b.WriteString(p.renderRow(SettingNotifications, "Push Notifications", onOff(p.notifications)))

	b.WriteString(styles.SectionStyle.Render("Display"))
	b.WriteString("\n")
	device := p.Emulation()
	if device == "" {
		device = "Off"
	}
	b.WriteString(p.renderRow(SettingEmulation, "Device Emulation", device))
	if !p.persistent {
		b.WriteString(styles.DimStyle.Render("  (not saved: preference store is in memory)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Version %s", p.version)))
	return b.String()
}

func (p Profile) renderRow(s Setting, label, value string) string {
	selected := p.Current() == s
	width := max(p.width, 40)
	gray := styles.LightGray
	if selected {
		gray = styles.White
	}
	accent := styles.MarqueeRed
	parts := []styles.RowPart{
		{Text: styles.Pad(label, width-len(value)-6), Foreground: &gray},
		{Text: value, Foreground: &accent},
	}
	return styles.RenderListRow(parts, selected, width) + "\n"
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
