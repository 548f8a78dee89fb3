// Package settings persists Quill's user configuration as a single JSON
// file. Loads merge the file over built-in defaults so newly added fields
// pick up their defaults without erasing user overrides; saves write the
// whole object back. There is no partial-field update and no migration
// versioning.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/quill-labs/quill/pkg/note"
)

// Settings is everything the user can configure.
type Settings struct {
	// Token is the bot token. A "$NAME" value resolves from the
	// environment on load.
	Token string `json:"token"`
	// Folder is the vault folder notes are written under.
	Folder string `json:"folder"`
	// IncludeMetadata prepends the title and metadata templates to each note.
	IncludeMetadata bool `json:"include_metadata"`
	// EnableCommands answers /help, /status and /notes in chat.
	EnableCommands bool `json:"enable_commands"`
	// Autostart opens the bot session as soon as the daemon boots.
	Autostart bool `json:"autostart"`
	// Templates is the note template set.
	Templates note.TemplateSet `json:"templates"`
}

// Defaults returns the configuration a fresh installation starts with.
func Defaults() Settings {
	return Settings{
		Token:           envOr("TELEGRAM_BOT_TOKEN", ""),
		Folder:          "Telegram",
		IncludeMetadata: true,
		EnableCommands:  true,
		Autostart:       true,
		Templates:       note.DefaultTemplates(),
	}
}

// Store owns the settings file. All mutation goes through Update so every
// change is saved wholesale and change hooks observe it.
type Store struct {
	path string

	mu      sync.Mutex
	current Settings

	hookMu   sync.Mutex
	onChange []func(Settings)
}

// Open loads the settings file at path, merged over defaults. A missing
// file is not an error; the store starts from defaults and creates the
// file on first save.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	cur, err := load(path)
	if err != nil {
		return nil, err
	}
	s.current = cur
	return s, nil
}

// Current returns a copy of the current settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnChange registers a hook called after every save and reload.
func (s *Store) OnChange(fn func(Settings)) {
	s.hookMu.Lock()
	s.onChange = append(s.onChange, fn)
	s.hookMu.Unlock()
}

// Update applies mutate to the settings, writes the file, and fires the
// change hooks.
func (s *Store) Update(mutate func(*Settings)) error {
	s.mu.Lock()
	mutate(&s.current)
	cur := s.current
	err := save(s.path, cur)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.fire(cur)
	return nil
}

// Reload re-reads the settings file (merged over defaults) and fires the
// change hooks, so an externally edited file behaves like a save.
func (s *Store) Reload() error {
	cur, err := load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = cur
	s.mu.Unlock()
	s.fire(cur)
	return nil
}

func (s *Store) fire(cur Settings) {
	s.hookMu.Lock()
	hooks := append([]func(Settings){}, s.onChange...)
	s.hookMu.Unlock()
	for _, fn := range hooks {
		fn(cur)
	}
}

func load(path string) (Settings, error) {
	base, err := json.Marshal(Defaults())
	if err != nil {
		return Settings{}, fmt.Errorf("marshal default settings: %w", err)
	}

	merged := base
	if path != "" {
		fileData, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// first run
		case err != nil:
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		default:
			merged, err = deepMergeJSON(base, fileData)
			if err != nil {
				return Settings{}, fmt.Errorf("merge settings %s: %w", path, err)
			}
		}
	}

	var cfg Settings
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	cfg.Token = resolveEnv(cfg.Token)
	return cfg, nil
}

func save(path string, cfg Settings) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

func deepMergeJSON(base, overlay []byte) ([]byte, error) {
	var baseMap map[string]interface{}
	if len(base) > 0 {
		if err := json.Unmarshal(base, &baseMap); err != nil {
			return nil, err
		}
	}
	if baseMap == nil {
		baseMap = map[string]interface{}{}
	}

	var overlayMap map[string]interface{}
	if len(overlay) > 0 {
		if err := json.Unmarshal(overlay, &overlayMap); err != nil {
			return nil, err
		}
	}
	mergeMap(baseMap, overlayMap)
	return json.Marshal(baseMap)
}

func mergeMap(dst, src map[string]interface{}) {
	for k, v := range src {
		dstObj, dstIsObj := dst[k].(map[string]interface{})
		srcObj, srcIsObj := v.(map[string]interface{})
		if dstIsObj && srcIsObj {
			mergeMap(dstObj, srcObj)
			dst[k] = dstObj
			continue
		}
		dst[k] = v
	}
}

// resolveEnv replaces a $ENV_VAR reference with its value.
func resolveEnv(s string) string {
	if len(s) > 1 && s[0] == '$' {
		if v := os.Getenv(s[1:]); v != "" {
			return v
		}
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
