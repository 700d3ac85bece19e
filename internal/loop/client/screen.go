package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/score"
)

var titleArt = []string{
	` ___ _  ___   ___   ___  ___ ___  ___ `,
	`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
	` | || .' |\ V / _ \| |) | _||   /\__ \`,
	`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	hud := c.engine.HUD()
	st := c.state
	transition := st.Screen != st.prevScreen || hud.State != st.prevEngine || hud.Paused != st.prevPaused ||
		hud.Revealed != st.prevReveal || st.isInactive != st.wasInactive
	st.prevScreen = st.Screen
	st.prevEngine = hud.State
	st.prevPaused = hud.Paused
	st.prevReveal = hud.Revealed
	st.wasInactive = st.isInactive

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Text:   c.chunkWriter,
		Now:    c.clock.Now(),
	}
	if err := c.engine.Draw(ctx); err != nil {
		return err
	}
	// Text written during Draw goes on top of the pixels.
	labels := c.chunkWriter.String()
	c.chunkWriter.Reset()

	// On phase or inactivity transitions, do a full terminal clear
	// so UI elements from the previous phase don't persist on screen.
	if transition {
		c.chunkWriter.WriteString("\033[H\033[2J")
	}
	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.chunkWriter.WriteString(labels)

	c.drawUI(hud, c.server.GetSnapshot())

	return c.chunkWriter.Flush()
}

// drawUI draws the HUD and any overlay for the current phase.
func (c *Client) drawUI(hud loop.HUD, snap *server.Snapshot) {
	switch {
	case c.state.Screen == ScreenShutdown:
		c.drawShutdownScreen()
	case c.state.isInactive:
		c.drawInactivityScreen()
	case c.state.Screen == ScreenStart:
		c.drawStartScreen(snap)
	default:
		c.drawHUD(hud, snap)
		switch {
		case hud.Paused:
			c.drawPauseScreen()
		case hud.Revealed:
			c.drawGameOverScreen(hud)
		}
	}
}

// hudAt writes text on one of the HUD rows above the canvas (line is 1-based).
func (c *Client) hudAt(col, line int, s string) {
	c.chunkWriter.WriteAt(col, line-config.HUDRows, s)
}

// drawHUD draws the in-game status rows.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(hud loop.HUD, snap *server.Snapshot) {
	s := c.styles
	width := c.canvas.TerminalWidth()

	c.hudAt(1, 1, s.hud.Render(fmt.Sprintf("Score: %-8d", hud.Score)))

	power := strings.Repeat(" ", len(powerUpText(0)))
	if hud.PowerUp == object.PowerUpRapidFire {
		power = s.accent.Render(powerUpText(hud.PowerUpRemaining.Seconds()))
	}
	c.hudAt(width/2-lipgloss.Width(power)/2, 1, power)

	players := fmt.Sprintf("Players: %-4d", snap.Players)
	c.hudAt(width-len(players)+1, 1, s.dim.Render(players))

	who := "anonymous - scores are not saved"
	if c.handle.Identity != "" {
		who = "pilot " + c.handle.Identity
	}
	c.hudAt(1, 2, s.dim.Render(fmt.Sprintf("%-40s", who)))

	if len(snap.Live) > 0 {
		best := snap.Live[0]
		line := fmt.Sprintf("Best online: %s %d", best.Username, best.Score)
		line = fmt.Sprintf("%30s", line)
		c.hudAt(width-len(line)+1, 2, s.dim.Render(line))
	}
}

// overlay centres a rendered block on the canvas and marks its cells so the
// next frame repaints them once the overlay is gone.
func (c *Client) overlay(block string) {
	w := lipgloss.Width(block)
	h := lipgloss.Height(block)
	col := (c.canvas.TerminalWidth()-w)/2 + 1
	row := (c.canvas.TerminalHeight()-h)/2 + 1
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	c.chunkWriter.WriteBlock(col, row, block)
	for i := 0; i < h; i++ {
		c.canvas.MarkTextDirty(col, row+i, w)
	}
}

// drawStartScreen draws the title screen with controls and leaderboards.
func (c *Client) drawStartScreen(snap *server.Snapshot) {
	s := c.styles

	title := s.title.Render(strings.Join(titleArt, "\n"))
	subtitle := s.dim.Render("~ Space Invaders in your terminal ~")

	controls := strings.Join([]string{
		"A D / < >  . . . .  Move",
		"SPACE / W  . . . . Shoot",
		"P / ESC  . . . . . Pause",
		"M  . . . . . . . .  Menu",
		"Q  . . . . . . . .  Quit",
	}, "\n")

	boards := s.leaderboardTable(snap.Top, snap.TopStale)
	if len(snap.Live) > 0 {
		var live []string
		for i, e := range snap.Live {
			live = append(live, fmt.Sprintf("%d. %-12s %6d", i+1, e.Username, e.Score))
		}
		liveBlock := lipgloss.JoinVertical(lipgloss.Left, s.accent.Render("Online now"), strings.Join(live, "\n"))
		boards = lipgloss.JoinHorizontal(lipgloss.Top, boards, "    ", liveBlock)
	}

	prompt := " "
	if c.clock.Now().UnixMilli()/600%2 == 0 {
		prompt = s.accent.Render(">>  Press SPACE to Start  <<")
	}

	who := s.dim.Render("Playing anonymously: scores are not saved")
	if c.handle.Identity != "" {
		who = s.dim.Render("Signed in as ") + s.accent.Render(c.handle.Identity)
	}

	c.overlay(lipgloss.JoinVertical(lipgloss.Center,
		title, subtitle, "", controls, "", boards, "", who, "", prompt,
	))
}

// drawPauseScreen draws the pause panel.
func (c *Client) drawPauseScreen() {
	s := c.styles
	c.overlay(s.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.title.Render("PAUSED"),
		"",
		"P to resume  -  M for menu",
	)))
}

// drawGameOverScreen draws the final score once it is revealed.
func (c *Client) drawGameOverScreen(hud loop.HUD) {
	s := c.styles

	saved := s.dim.Render("Anonymous game: score not saved")
	if c.handle.Identity != "" {
		saved = s.dim.Render(fmt.Sprintf("Submitted for %s (+%d coins)", c.handle.Identity, score.CoinsFor(hud.FinalScore)))
	}

	prompt := " "
	if c.clock.Now().UnixMilli()/600%2 == 0 {
		prompt = s.accent.Render(">>  R to Restart  -  M for Menu  <<")
	}

	c.overlay(s.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.warn.Render("GAME OVER"),
		"",
		s.hud.Render(fmt.Sprintf("Final score: %d", hud.FinalScore)),
		saved,
		"",
		prompt,
	)))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	s := c.styles
	left := int(config.InactivityDisconnectUser - c.clock.Now().Sub(c.lastInput).Seconds())
	c.overlay(s.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.warn.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", left),
		"",
		"Press any key to continue",
	)))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen() {
	s := c.styles
	remaining := int(c.state.shutdownTimer) + 1
	c.overlay(s.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.warn.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		s.dim.Render("Press Q to disconnect now"),
	)))
}
