// Package topics extends Cobra's built-in help with topics loaded from
// files, so a CLI can document concepts that are not tied to any single
// command.
package topics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// topicExtensions are the file extensions recognized as help topics
var topicExtensions = []string{".txt", ".md"}

// Topic is one help topic loaded from disk
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Manager holds the topics found in a directory
type Manager struct {
	dir          string
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	renderer     Renderer
}

// New creates a Manager for the given topics directory. A nil renderer
// falls back to plain text output.
func New(dir string, renderer Renderer) *Manager {
	if renderer == nil {
		renderer = &PlainRenderer{}
	}
	return &Manager{
		dir:      dir,
		topics:   make(map[string]*Topic),
		renderer: renderer,
	}
}

// scan loads all topic files under the manager's directory. A missing
// directory is not an error, the CLI simply has no extra topics.
func (m *Manager) scan() error {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(m.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		supported := false
		for _, validExt := range topicExtensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		m.topics[name] = &Topic{
			Name:     name,
			FilePath: path,
			Content:  string(content),
		}
		return nil
	})
}

// Get retrieves a topic by name
func (m *Manager) Get(name string) (*Topic, bool) {
	topic, ok := m.topics[name]
	return topic, ok
}

// Names returns all topic names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) render(topic *Topic) string {
	return m.renderer.Render(topic.Content, filepath.Ext(topic.FilePath))
}

// Install wires the topic help system into rootCmd: the help command
// and the --help flag both recognize topic names in addition to
// command names, and "help topics" lists everything available.
func Install(rootCmd *cobra.Command, dir string, renderer Renderer) error {
	m := New(dir, renderer)
	if err := m.scan(); err != nil {
		return fmt.Errorf("failed to scan help topics: %w", err)
	}

	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				names := m.Names()
				if len(names) == 0 {
					fmt.Println("No help topics available.")
					return
				}
				fmt.Println("Available help topics:")
				for _, name := range names {
					fmt.Printf("  %s\n", name)
				}
				fmt.Printf("\nUse '%s help <topic>' to read about a specific topic.\n", rootCmd.Name())
				return
			}

			if topic, ok := m.Get(args[0]); ok {
				fmt.Print(m.render(topic))
				return
			}

			m.originalHelp(rootCmd, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := m.Get(args[0]); ok {
				fmt.Print(m.render(topic))
				return
			}
		}
		m.originalHelp(cmd, args)
	})

	return nil
}
