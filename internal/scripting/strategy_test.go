package scripting_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/game/dice"
	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/pokedex"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
	"github.com/cory-johannsen/pokesim/internal/scripting"
)

func contentDir(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "content"}, parts...)...)
}

func loadStrategies(t *testing.T) *scripting.Manager {
	t.Helper()
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(contentDir("strategies")))
	return mgr
}

func startStrategy(t *testing.T, mgr *scripting.Manager, name string) *scripting.Strategy {
	t.Helper()
	s, err := mgr.Strategy(name)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func pct(v int) *int { return &v }

func pikachuView(foe battle.CombatantView) battle.View {
	return battle.View{
		Turn: 1,
		Self: battle.CombatantView{
			Side: battle.Side1, Name: "pikachu", Level: 50,
			Types: []typechart.Type{typechart.Electric},
			HP:    95, MaxHP: 95, Speed: 95,
			Moves: []battle.MoveView{
				{Slot: 0, Name: "tackle", Type: typechart.Normal, Category: move.Physical, Power: 40, Accuracy: pct(100), PP: 35, MaxPP: 35},
				{Slot: 1, Name: "thunderbolt", Type: typechart.Electric, Category: move.Special, Power: 90, Accuracy: pct(100), PP: 15, MaxPP: 15, Inflicts: status.Paralysis},
				{Slot: 2, Name: "thunder-wave", Type: typechart.Electric, Category: move.StatusCategory, Accuracy: pct(90), PP: 20, MaxPP: 20, Inflicts: status.Paralysis},
				{Slot: 3, Name: "water-gun", Type: typechart.Water, Category: move.Special, Power: 40, Accuracy: pct(100), PP: 25, MaxPP: 25},
			},
		},
		Foe: foe,
	}
}

func squirtle() battle.CombatantView {
	return battle.CombatantView{Side: battle.Side2, Name: "squirtle", Level: 50, Types: []typechart.Type{typechart.Water}, HP: 104, MaxHP: 104, Speed: 48}
}

func TestStrategy_Unknown(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, err := mgr.Strategy("nope")
	assert.ErrorIs(t, err, scripting.ErrUnknownStrategy)
}

func TestGreedy_OpensWithStatusOnHealthyFoe(t *testing.T) {
	mgr := loadStrategies(t)
	greedy := startStrategy(t, mgr, "greedy")
	assert.Equal(t, "greedy", greedy.Name())
	assert.Equal(t, 2, greedy.SelectMove(pikachuView(squirtle()), nil))
}

func TestGreedy_BestDamageOnceFoeIsAfflicted(t *testing.T) {
	mgr := loadStrategies(t)
	greedy := startStrategy(t, mgr, "greedy")

	foe := squirtle()
	foe.Status = status.Paralysis
	assert.Equal(t, 1, greedy.SelectMove(pikachuView(foe), nil), "thunderbolt: super effective with STAB")

	foe = squirtle()
	foe.HP = 40
	assert.Equal(t, 1, greedy.SelectMove(pikachuView(foe), nil), "no status once the foe is below half")
}

func TestGreedy_AvoidsImmuneMatchups(t *testing.T) {
	mgr := loadStrategies(t)
	greedy := startStrategy(t, mgr, "greedy")

	geodude := battle.CombatantView{Side: battle.Side2, Name: "geodude", Level: 50, Types: []typechart.Type{typechart.Rock, typechart.Ground}, HP: 100, MaxHP: 100}
	assert.Equal(t, 3, greedy.SelectMove(pikachuView(geodude), nil), "water-gun is 4x, electric moves do nothing")
}

func TestGreedy_SkipsEmptyPP(t *testing.T) {
	mgr := loadStrategies(t)
	greedy := startStrategy(t, mgr, "greedy")

	v := pikachuView(squirtle())
	v.Self.Moves[2].PP = 0
	v.Self.Moves[1].PP = 0
	assert.Equal(t, 3, greedy.SelectMove(v, nil))
}

func TestChaotic_UsesBattleDice(t *testing.T) {
	mgr := loadStrategies(t)
	chaotic := startStrategy(t, mgr, "chaotic")

	v := pikachuView(squirtle())
	v.Self.Moves[0].PP = 0
	// usable is {2, 3, 4}; engine.random(3) is Intn(3)+1.
	assert.Equal(t, 2, chaotic.SelectMove(v, fixedSrc{1}))
	assert.Equal(t, 1, chaotic.SelectMove(v, fixedSrc{0}))
}

func TestStrategy_FallsBackToRandom(t *testing.T) {
	cases := map[string]string{
		"out of range":  `function choose_move() return 9 end`,
		"fractional":    `function choose_move() return 1.5 end`,
		"wrong type":    `function choose_move() return "tackle" end`,
		"nil":           `function choose_move() return nil end`,
		"runtime error": `function choose_move() error("boom") end`,
		"no hook":       `-- nothing here`,
		"runaway":       `function choose_move() while true do end end`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			mgr, logs := newTestManager(t)
			require.NoError(t, mgr.LoadString("s", src))
			s := startStrategy(t, mgr, "s")

			assert.Equal(t, 1, s.SelectMove(pikachuView(squirtle()), fixedSrc{1}))
			assert.True(t, hasLevel(logs, zap.WarnLevel))
		})
	}
}

func TestStrategy_ReadsViewFields(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("reader", `
		function choose_move(self, foe, turn)
			assert(turn == 7)
			assert(self.name == "pikachu" and self.types[1] == "electric")
			assert(foe.moves == nil)
			assert(foe.status == "burn")
			local m = self.moves[3]
			assert(m.slot == 3 and m.category == "status" and m.inflicts == "paralysis")
			assert(m.accuracy == 90 and m.power == 0 and m.max_pp == 20)
			return 4
		end
	`))
	s := startStrategy(t, mgr, "reader")

	foe := squirtle()
	foe.Status = status.Burn
	v := pikachuView(foe)
	v.Turn = 7
	assert.Equal(t, 3, s.SelectMove(v, fixedSrc{0}))
}

func runScripted(t *testing.T, mgr *scripting.Manager, dex *pokedex.Registry, seed uint64) battle.Result {
	t.Helper()
	return runBattle(t, mgr, dex, seed, "greedy", "chaotic")
}

func runBattle(t *testing.T, mgr *scripting.Manager, dex *pokedex.Registry, seed uint64, side1, side2 string) battle.Result {
	t.Helper()
	engine := battle.NewEngine(dex, zap.NewNop(), 0)
	b, err := engine.Setup(battle.Config{
		Pokemon1: battle.CombatantConfig{Name: "pikachu", Level: 50, Moves: []string{"tackle", "thunderbolt", "thunder-wave", "quick-attack"}},
		Pokemon2: battle.CombatantConfig{Name: "squirtle", Level: 50, Moves: []string{"tackle", "water-gun", "bite", "surf"}},
	}, dice.NewSeededSource(seed))
	require.NoError(t, err)

	b.SetSelector(battle.Side1, startStrategy(t, mgr, side1))
	b.SetSelector(battle.Side2, startStrategy(t, mgr, side2))

	res, err := b.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestScriptedBattle_ReplaysFromSeed(t *testing.T) {
	mgr := loadStrategies(t)
	dex, err := pokedex.LoadDirectory(contentDir("dex"))
	require.NoError(t, err)

	first := runScripted(t, mgr, dex, 42)
	second := runScripted(t, mgr, dex, 42)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Log)

	opener := first.Log[0].Filter(battle.EventMoveUse)
	require.NotEmpty(t, opener)
	var pikachuOpened bool
	for _, e := range opener {
		if e.Side == battle.Side1 {
			assert.Equal(t, "thunder-wave", e.Move)
			pikachuOpened = true
		}
	}
	assert.True(t, pikachuOpened)
}

func TestManager_Selector(t *testing.T) {
	mgr := loadStrategies(t)

	sel, err := mgr.Selector("")
	require.NoError(t, err)
	assert.IsType(t, battle.RandomSelector{}, sel)

	sel, err = mgr.Selector(scripting.RandomStrategy)
	require.NoError(t, err)
	assert.IsType(t, battle.RandomSelector{}, sel)

	sel, err = mgr.Selector("greedy")
	require.NoError(t, err)
	assert.IsType(t, &scripting.Strategy{}, sel)

	_, err = mgr.Selector("missing")
	assert.ErrorIs(t, err, scripting.ErrUnknownStrategy)
}

const rotating = `
	calls = 0
	function choose_move(self, foe, turn)
		calls = calls + 1
		return (calls - 1) % 4 + 1
	end
`

func TestStrategy_GlobalsArePerBattle(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("rotate", rotating))
	v := pikachuView(squirtle())

	first := startStrategy(t, mgr, "rotate")
	assert.Equal(t, 0, first.SelectMove(v, fixedSrc{0}))
	assert.Equal(t, 1, first.SelectMove(v, fixedSrc{0}))

	second := startStrategy(t, mgr, "rotate")
	assert.Equal(t, 0, second.SelectMove(v, fixedSrc{0}), "a new battle starts from fresh globals")
	assert.Equal(t, 2, first.SelectMove(v, fixedSrc{0}))

	ret, err := mgr.CallHook("rotate", "choose_move", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret, "battles never touch the shared VM")
}

func TestStrategy_ClosedFallsBackToRandom(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("rotate", rotating))
	s := startStrategy(t, mgr, "rotate")
	s.Close()

	assert.Equal(t, 1, s.SelectMove(pikachuView(squirtle()), fixedSrc{1}))
	assert.True(t, hasLevel(logs, zap.WarnLevel))
}

func TestScriptedBattle_StatefulStrategyReplays(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("rotate", rotating))
	dex, err := pokedex.LoadDirectory(contentDir("dex"))
	require.NoError(t, err)

	first := runBattle(t, mgr, dex, 9, "rotate", "rotate")
	second := runBattle(t, mgr, dex, 9, "rotate", "rotate")
	assert.Equal(t, first, second)

	var opener []string
	for _, e := range first.Log[0].Filter(battle.EventMoveUse) {
		opener = append(opener, e.Move)
	}
	assert.Contains(t, opener, "tackle", "both sides open with slot 1")
}
