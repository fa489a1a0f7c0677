// internal/acquire/session_test.go
package acquire_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tamzrod/touchdiag/internal/acquire"
	"github.com/tamzrod/touchdiag/internal/hawkeye"
	"github.com/tamzrod/touchdiag/internal/mxt"
	"github.com/tamzrod/touchdiag/internal/regbus/sim"
	"github.com/tamzrod/touchdiag/internal/timeutil"
)

// e2eFixture brings up a simulated 2x4 chip (one stripe, two 4-sample
// pages per frame) and a session against it.
func e2eFixture(t *testing.T) (*sim.Device, *acquire.Session, mxt.Geometry) {
	t.Helper()

	dev, err := sim.New(sim.Config{
		Family:  0x80,
		Variant: 0x01,
		MatrixX: 2,
		MatrixY: 4,
		T37Size: 10,
	})
	require.NoError(t, err)

	info, err := mxt.ReadInfo(dev)
	require.NoError(t, err)

	addrs, err := acquire.ResolveAddresses(info)
	require.NoError(t, err)

	geo := mxt.Geometry{XSize: 2, YSize: 4, NumStripes: 1, PagesPerStripe: 2}

	clock := timeutil.NewMockClock(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))
	sess, err := acquire.NewSession(dev, geo, addrs, acquire.ModeDeltas, acquire.Options{
		Clock: clock,
	})
	require.NoError(t, err)

	return dev, sess, geo
}

func TestRun_EndToEnd(t *testing.T) {
	_, sess, geo := e2eFixture(t)

	dir := t.TempDir()
	framesPath := filepath.Join(dir, "hawkeye.csv")
	controlPath := filepath.Join(dir, "control.txt")

	w, err := hawkeye.NewWriter(framesPath, geo)
	require.NoError(t, err)

	sum, err := sess.Run(1, w)
	require.NoError(t, err)
	require.Equal(t, 1, sum.Frames)

	require.NoError(t, w.Close())
	require.NoError(t, hawkeye.WriteControl(controlPath, geo))

	data, err := os.ReadFile(framesPath)
	require.NoError(t, err)
	require.Equal(t, "09:30:00,1,0,1,2,3,4,5,6,7,\n", string(data))

	control, err := os.ReadFile(controlPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(control), "\n"), "\n")
	require.Len(t, lines, 1+geo.Cells())
	require.Equal(t, "uint8,1,1,TIN", lines[0])
	require.Equal(t, "int16_lsb_msb,1,1,X0Y0_Delta16", lines[1])
	require.Equal(t, "int16_lsb_msb,4,2,X1Y3_Delta16", lines[len(lines)-1])
}

func TestRun_ZeroFramesTouchesNoRegisters(t *testing.T) {
	dev, sess, geo := e2eFixture(t)

	dir := t.TempDir()
	w, err := hawkeye.NewWriter(filepath.Join(dir, "hawkeye.csv"), geo)
	require.NoError(t, err)

	sum, err := sess.Run(0, w)
	require.NoError(t, err)
	require.Equal(t, 0, sum.Frames)
	require.Zero(t, dev.PollCount)

	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(dir, "hawkeye.csv"))
	require.NoError(t, err)
	require.Empty(t, data)
}

// latchSink breaks the device after the first delivered frame.
type latchSink struct {
	inner  acquire.FrameSink
	dev    *sim.Device
	frames int
}

func (l *latchSink) WriteFrame(rec acquire.Record) error {
	if err := l.inner.WriteFrame(rec); err != nil {
		return err
	}
	l.frames++
	l.dev.NeverClear = true
	return nil
}

func TestRun_AbortKeepsEmittedFrames(t *testing.T) {
	dev, sess, geo := e2eFixture(t)

	dir := t.TempDir()
	framesPath := filepath.Join(dir, "hawkeye.csv")
	w, err := hawkeye.NewWriter(framesPath, geo)
	require.NoError(t, err)

	sink := &latchSink{inner: w, dev: dev}
	_, err = sess.Run(3, sink)
	require.ErrorIs(t, err, acquire.ErrCommandTimeout)
	require.Contains(t, err.Error(), "frame 2")

	require.NoError(t, w.Close())

	data, err := os.ReadFile(framesPath)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestRun_NegativeFrameCountRejected(t *testing.T) {
	_, sess, _ := e2eFixture(t)

	_, err := sess.Run(-1)
	require.Error(t, err)
}

func TestResolveAddresses_MissingObject(t *testing.T) {
	info := &mxt.Info{
		Objects: []mxt.Object{
			{Type: mxt.ObjectCommandProcessorT6, Start: 0x0100, Size: 6, Instances: 1},
		},
	}

	_, err := acquire.ResolveAddresses(info)
	require.True(t, errors.Is(err, acquire.ErrAddressResolution))
	require.True(t, errors.Is(err, mxt.ErrObjectNotFound))
}
