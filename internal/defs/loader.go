// internal/defs/loader.go
package defs

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data
var embedded embed.FS

// TowerLibrary is a map to hold all tower definitions, keyed by their ID.
var TowerLibrary map[string]TowerDefinition

// TowerOrder lists tower IDs in file order, for shop layout.
var TowerOrder []string

// EnemyLibrary is a map to hold all enemy definitions, keyed by their ID.
var EnemyLibrary map[string]EnemyDefinition

// LevelLibrary holds the level tables keyed by ID.
var LevelLibrary map[string]LevelDefinition

// LevelOrder lists level IDs from easiest to hardest.
var LevelOrder []string

var (
	loadOnce sync.Once
	loadErr  error
)

// Load populates every library from the embedded data files. Safe to call repeatedly.
func Load() error {
	loadOnce.Do(func() {
		loadErr = LoadFrom(embedded, "data")
	})
	return loadErr
}

// MustLoad is Load for program start-up and tests.
func MustLoad() {
	if err := Load(); err != nil {
		panic(err)
	}
}

// LoadFrom reads towers.json, enemies.json and levels.yaml from dir in fsys.
func LoadFrom(fsys fs.FS, dir string) error {
	if err := LoadTowerDefinitions(fsys, dir+"/towers.json"); err != nil {
		return err
	}
	if err := LoadEnemyDefinitions(fsys, dir+"/enemies.json"); err != nil {
		return err
	}
	return LoadLevelDefinitions(fsys, dir+"/levels.yaml")
}

// LoadTowerDefinitions reads the tower configuration file and populates the TowerLibrary.
func LoadTowerDefinitions(fsys fs.FS, path string) error {
	file, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read tower definitions file: %w", err)
	}

	var towerDefs []TowerDefinition
	if err := json.Unmarshal(file, &towerDefs); err != nil {
		return fmt.Errorf("failed to unmarshal tower definitions: %w", err)
	}

	library := make(map[string]TowerDefinition, len(towerDefs))
	order := make([]string, 0, len(towerDefs))
	for _, def := range towerDefs {
		if err := validateTower(def); err != nil {
			return fmt.Errorf("tower %q: %w", def.ID, err)
		}
		library[def.ID] = def
		order = append(order, def.ID)
	}
	TowerLibrary, TowerOrder = library, order

	log.Printf("Loaded %d tower definitions", len(TowerLibrary))
	return nil
}

// LoadEnemyDefinitions reads the enemy configuration file and populates the EnemyLibrary.
func LoadEnemyDefinitions(fsys fs.FS, path string) error {
	file, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read enemy definitions file: %w", err)
	}

	var enemyDefs []EnemyDefinition
	if err := json.Unmarshal(file, &enemyDefs); err != nil {
		return fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}

	library := make(map[string]EnemyDefinition, len(enemyDefs))
	for _, def := range enemyDefs {
		if def.Health <= 0 || def.Speed <= 0 {
			return fmt.Errorf("enemy %q: health and speed must be positive", def.ID)
		}
		library[def.ID] = def
	}
	EnemyLibrary = library

	log.Printf("Loaded %d enemy definitions", len(EnemyLibrary))
	return nil
}

// LoadLevelDefinitions reads the level tables. Enemies must be loaded first.
func LoadLevelDefinitions(fsys fs.FS, path string) error {
	file, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read level definitions file: %w", err)
	}

	var levelDefs []LevelDefinition
	if err := yaml.Unmarshal(file, &levelDefs); err != nil {
		return fmt.Errorf("failed to unmarshal level definitions: %w", err)
	}

	library := make(map[string]LevelDefinition, len(levelDefs))
	order := make([]string, 0, len(levelDefs))
	for _, def := range levelDefs {
		if err := validateLevel(def); err != nil {
			return fmt.Errorf("level %q: %w", def.ID, err)
		}
		library[def.ID] = def
		order = append(order, def.ID)
	}
	LevelLibrary, LevelOrder = library, order

	log.Printf("Loaded %d level definitions", len(LevelLibrary))
	return nil
}

func validateTower(def TowerDefinition) error {
	switch def.Behavior {
	case BehaviorTurret:
	case BehaviorMissile:
		if def.Missile == nil {
			return fmt.Errorf("missile behavior needs missile parameters")
		}
	case BehaviorPulse:
		if def.Pulse == nil {
			return fmt.Errorf("pulse behavior needs pulse parameters")
		}
	default:
		return fmt.Errorf("unknown behavior %q", def.Behavior)
	}
	switch def.Range.Shape {
	case RangeCircle, RangePlus:
	default:
		return fmt.Errorf("unknown range shape %q", def.Range.Shape)
	}
	if def.Cooldown < 0 {
		return fmt.Errorf("negative cooldown")
	}
	return nil
}

func validateLevel(def LevelDefinition) error {
	if def.Waves <= 0 {
		return fmt.Errorf("waves must be positive")
	}
	known := func(id string) error {
		if _, ok := EnemyLibrary[id]; !ok {
			return fmt.Errorf("unknown enemy %q", id)
		}
		return nil
	}
	for _, rule := range def.Rules {
		if rule.From < 1 || rule.To > def.Waves || rule.From > rule.To {
			return fmt.Errorf("rule range %d-%d outside 1-%d", rule.From, rule.To, def.Waves)
		}
		for _, f := range rule.Fixed {
			if err := known(f.Enemy); err != nil {
				return err
			}
		}
		for _, s := range rule.Segments {
			if s.Steps == "" {
				return fmt.Errorf("segment without steps")
			}
			if s.Count != "" && len(s.Enemies) == 0 && len(s.Group) == 0 {
				return fmt.Errorf("segment spawns %s enemies but names none", s.Count)
			}
			for _, id := range s.Enemies {
				if err := known(id); err != nil {
					return err
				}
			}
			for _, g := range s.Group {
				if err := known(g.Enemy); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
