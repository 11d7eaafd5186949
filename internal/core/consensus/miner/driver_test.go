package miner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
	eventimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/types"
)

// ==================== 测试替身 ====================

type staticOracle struct{ difficulty *uint256.Int }

func (o staticOracle) GetDifficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	return o.difficulty, nil
}

type mockWork struct {
	mu    sync.Mutex
	work  *Work
	err   error
	calls int
}

func (m *mockWork) BestWork(ctx context.Context) (*Work, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	w := *m.work
	return &w, nil
}

func (m *mockWork) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockSubmitter struct {
	mu       sync.Mutex
	seals    [][]byte
	rejectN  int
	onSubmit func(accepted int)
}

func (m *mockSubmitter) SubmitSeal(ctx context.Context, work *Work, seal []byte) error {
	m.mu.Lock()
	if m.rejectN > 0 {
		m.rejectN--
		m.mu.Unlock()
		return errors.New("stale work")
	}
	m.seals = append(m.seals, seal)
	n := len(m.seals)
	m.mu.Unlock()

	if m.onSubmit != nil {
		m.onSubmit(n)
	}
	return nil
}

// mockAlgo 可编程的PoW算法
type mockAlgo struct {
	mu              sync.Mutex
	difficultyErrs  int
	mineErrs        int
	difficultyCalls int
	mineCalls       int
	onMine          func(call int)
}

func (m *mockAlgo) Difficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.difficultyCalls++
	if m.difficultyErrs > 0 {
		m.difficultyErrs--
		return nil, types.NewEnvironmentError("fetching difficulty from oracle failed", errors.New("oracle offline"))
	}
	return uint256.NewInt(1), nil
}

func (m *mockAlgo) Verify(parent, preHash common.Hash, seal []byte, difficulty *uint256.Int) (bool, error) {
	return false, nil
}

func (m *mockAlgo) Mine(parent, preHash common.Hash, difficulty *uint256.Int, rounds uint32) ([]byte, error) {
	m.mu.Lock()
	m.mineCalls++
	call := m.mineCalls
	fail := m.mineErrs > 0
	if fail {
		m.mineErrs--
	}
	m.mu.Unlock()

	if m.onMine != nil {
		m.onMine(call)
	}
	if fail {
		return nil, types.NewEnvironmentError("initialize rng failed for mining", errors.New("entropy unavailable"))
	}
	return nil, nil
}

func (m *mockAlgo) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.difficultyCalls, m.mineCalls
}

func testOptions() *consensusconfig.POWOptions {
	return &consensusconfig.POWOptions{
		RoundBudget:   500,
		BuildTime:     2 * time.Second,
		RetryInterval: 5 * time.Second,
	}
}

func testWork() *Work {
	return &Work{
		Parent:  common.HexToHash("0x01"),
		PreHash: common.HexToHash("0x02"),
		Height:  1,
	}
}

func newEngine(t *testing.T, difficulty *uint256.Int) *pow.Engine {
	t.Helper()
	engine, err := pow.NewEngine(staticOracle{difficulty: difficulty}, nil,
		pow.WithNonceSourceFactory(pow.SeededNonceSourceFactory([32]byte{0x42})))
	require.NoError(t, err)
	return engine
}

// ==================== 测试用例 ====================

func TestNewDriver_Validation(t *testing.T) {
	algo := &mockAlgo{}
	work := &mockWork{work: testWork()}
	sub := &mockSubmitter{}

	_, err := NewDriver(nil, work, sub, testOptions(), nil)
	assert.Error(t, err)
	_, err = NewDriver(algo, work, sub, nil, nil)
	assert.Error(t, err)

	opts := testOptions()
	opts.RoundBudget = 0
	_, err = NewDriver(algo, work, sub, opts, nil)
	assert.Error(t, err)

	opts = testOptions()
	opts.BuildTime = 0
	_, err = NewDriver(algo, work, sub, opts, nil)
	assert.Error(t, err)
}

func TestDriver_MinesSubmitsAndPublishes(t *testing.T) {
	engine := newEngine(t, uint256.NewInt(1))
	work := &mockWork{work: testWork()}
	bus := eventimpl.New(nil)
	require.NoError(t, bus.EnableEventHistory(types.EventTypeSealFound, 10))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := &mockSubmitter{onSubmit: func(n int) {
		if n == 3 {
			cancel()
		}
	}}

	driver, err := NewDriver(engine, work, sub, testOptions(), nil,
		WithClock(clock.NewMock()), WithEventBus(bus))
	require.NoError(t, err)

	require.NoError(t, driver.Run(ctx))

	require.Len(t, sub.seals, 3)
	for _, seal := range sub.seals {
		ok, err := engine.Verify(testWork().Parent, testWork().PreHash, seal, uint256.NewInt(1))
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// 每次挖出封印后都强制刷新任务
	assert.Equal(t, 3, work.callCount())

	stats := driver.Stats()
	assert.Equal(t, uint64(3), stats.Rounds)
	assert.Equal(t, uint64(3), stats.Hits)
	assert.Equal(t, uint64(3), stats.Seals)
	assert.Equal(t, uint64(3*500), stats.Attempts)
	assert.False(t, stats.LastSealAt.IsZero())

	history := bus.GetEventHistory(types.EventTypeSealFound)
	require.Len(t, history, 3)
	ev, ok := history[0].(*types.SealFoundEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(1), ev.Height)
	assert.Equal(t, testWork().PreHash, ev.PreHash)
}

func TestDriver_RefreshesWorkAfterBuildTime(t *testing.T) {
	mock := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	algo := &mockAlgo{onMine: func(call int) {
		mock.Add(time.Second)
		if call == 6 {
			cancel()
		}
	}}
	work := &mockWork{work: testWork()}

	driver, err := NewDriver(algo, work, &mockSubmitter{}, testOptions(), nil, WithClock(mock))
	require.NoError(t, err)
	require.NoError(t, driver.Run(ctx))

	// t=0 获取，t=2 与 t=4 各刷新一次
	assert.Equal(t, 3, work.callCount())
	_, mineCalls := algo.counts()
	assert.Equal(t, 6, mineCalls)

	stats := driver.Stats()
	assert.Equal(t, uint64(6), stats.Rounds)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Seals)
}

func TestDriver_BacksOffOnEnvironmentError(t *testing.T) {
	mock := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	algo := &mockAlgo{difficultyErrs: 1, onMine: func(int) { cancel() }}
	driver, err := NewDriver(algo, &mockWork{work: testWork()}, &mockSubmitter{}, testOptions(), nil, WithClock(mock))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	// 退避期间不会调用 Mine
	require.Eventually(t, func() bool {
		difficultyCalls, _ := algo.counts()
		return difficultyCalls == 1
	}, time.Second, time.Millisecond)
	_, mineCalls := algo.counts()
	assert.Zero(t, mineCalls)

	var runErr error
	require.Eventually(t, func() bool {
		mock.Add(5 * time.Second)
		select {
		case runErr = <-done:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, runErr)

	difficultyCalls, mineCalls := algo.counts()
	assert.Equal(t, 2, difficultyCalls)
	assert.Equal(t, 1, mineCalls)
}

func TestDriver_MineErrorForcesRefresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	algo := &mockAlgo{mineErrs: 1, onMine: func(call int) {
		if call == 2 {
			cancel()
		}
	}}
	work := &mockWork{work: testWork()}
	opts := testOptions()
	opts.RetryInterval = 0

	driver, err := NewDriver(algo, work, &mockSubmitter{}, opts, nil, WithClock(clock.NewMock()))
	require.NoError(t, err)
	require.NoError(t, driver.Run(ctx))

	assert.Equal(t, 2, work.callCount())
}

func TestDriver_WorkProviderErrorBacksOff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	work := &mockWork{err: errors.New("no head")}
	opts := testOptions()
	opts.RetryInterval = 0

	algo := &mockAlgo{}
	driver, err := NewDriver(algo, work, &mockSubmitter{}, opts, nil, WithClock(clock.NewMock()))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	require.Eventually(t, func() bool { return work.callCount() >= 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	difficultyCalls, mineCalls := algo.counts()
	assert.Zero(t, difficultyCalls)
	assert.Zero(t, mineCalls)
}

func TestDriver_RejectedSealIsNotCounted(t *testing.T) {
	engine := newEngine(t, uint256.NewInt(1))
	bus := eventimpl.New(nil)
	require.NoError(t, bus.EnableEventHistory(types.EventTypeSealFound, 10))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := &mockSubmitter{rejectN: 1, onSubmit: func(int) { cancel() }}

	driver, err := NewDriver(engine, &mockWork{work: testWork()}, sub, testOptions(), nil,
		WithClock(clock.NewMock()), WithEventBus(bus))
	require.NoError(t, err)
	require.NoError(t, driver.Run(ctx))

	stats := driver.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Seals)
	assert.Len(t, bus.GetEventHistory(types.EventTypeSealFound), 1)
}

func TestDriver_StartStop(t *testing.T) {
	engine := newEngine(t, new(uint256.Int).SetAllOne())
	opts := testOptions()
	opts.RoundBudget = 10

	driver, err := NewDriver(engine, &mockWork{work: testWork()}, &mockSubmitter{}, opts, nil)
	require.NoError(t, err)

	require.NoError(t, driver.Start(context.Background()))
	assert.ErrorIs(t, driver.Start(context.Background()), ErrAlreadyRunning)
	assert.True(t, driver.IsRunning())

	require.Eventually(t, func() bool { return driver.Stats().Rounds > 0 }, time.Second, time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, driver.Stop(stopCtx))
	assert.False(t, driver.IsRunning())
	assert.False(t, driver.Stats().Running)
	assert.Zero(t, driver.Stats().Seals)

	// 重复停止无副作用
	require.NoError(t, driver.Stop(stopCtx))
}
