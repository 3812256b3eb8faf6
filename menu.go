package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// menuKeyMap lets Esc leave a menu as well as Ctrl+C
func menuKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "back"))
	return km
}

func screenOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], len(utils.ScreenSizes))
	for i, s := range utils.ScreenSizes {
		opts[i] = huh.NewOption(s.String(), i)
	}
	return opts
}

func patternOptions() []huh.Option[string] {
	names := model.Selections()
	opts := make([]huh.Option[string], len(names))
	for i, name := range names {
		opts[i] = huh.NewOption(name, name)
	}
	return opts
}

// chooseScreen asks for a screen size and returns its index
func chooseScreen(selected int) (int, error) {
	if selected < 0 {
		selected = utils.DefaultScreen
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Select screen size").
			Options(screenOptions()...).
			Value(&selected),
	)).WithKeyMap(menuKeyMap()).Run()
	return selected, err
}

// choosePattern asks for the pattern to seed
func choosePattern(selected string) (string, error) {
	if selected == "" {
		selected = model.SelectGlider
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Select pattern").
			Description("Enter to start · Esc to go back").
			Options(patternOptions()...).
			Value(&selected),
	)).WithKeyMap(menuKeyMap()).Run()
	return selected, err
}

// runMenus walks the size and pattern menus; leaving the pattern menu returns to the size menu.
func runMenus(config utils.Config) (utils.Config, error) {
	for {
		screen, err := chooseScreen(config.Screen)
		if err != nil {
			return config, errors.Wrap(err, "[runMenus] screen size")
		}

		pattern, err := choosePattern(config.Pattern)
		if errors.Is(err, huh.ErrUserAborted) {
			config.Screen = screen
			continue
		}
		if err != nil {
			return config, errors.Wrap(err, "[runMenus] pattern")
		}

		config.Screen = screen
		config.Pattern = pattern
		return config, nil
	}
}
