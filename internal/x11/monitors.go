package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/framewm/internal/platform"
)

// Screens retrieves all active outputs using XRandR. When the extension is
// missing or reports nothing, the root screen is returned as a single
// output.
func (c *Connection) Screens() ([]platform.Screen, error) {
	screens, err := c.randrScreens()
	if err != nil {
		c.log.Debug("randr unavailable, using root screen", "error", err)
	}
	if len(screens) == 0 {
		return []platform.Screen{c.rootScreen()}, nil
	}
	return screens, nil
}

func (c *Connection) randrScreens() ([]platform.Screen, error) {
	conn := c.XUtil.Conn()
	// Initialize RandR if not already done
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.RootWin).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var screens []platform.Screen
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		output, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			name = string(output.Name)
		}

		screens = append(screens, platform.Screen{
			ID:   i,
			Name: name,
			Bounds: platform.Rect{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		})
	}
	return screens, nil
}

func (c *Connection) rootScreen() platform.Screen {
	s := c.XUtil.Screen()
	return platform.Screen{
		Name: "root",
		Bounds: platform.Rect{
			Width:  int(s.WidthInPixels),
			Height: int(s.HeightInPixels),
		},
	}
}
