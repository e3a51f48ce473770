package diagnostics_test

import (
	"testing"

	"github.com/corvid-labs/novelty/diagnostics"
)

func TestRecordEventDoesNotPanicForScoreAndDeadEnd(t *testing.T) {
	diagnostics.RecordEvent(diagnostics.Event{RunID: "r1", Score: 4})
	diagnostics.RecordEvent(diagnostics.Event{RunID: "r1", DeadEnd: true})
	diagnostics.RecordPreferredOps("r1", 2)
	diagnostics.RecordMaxValueEverSeen("r1", 9)
}

func TestSinkDumpRecordsWithoutAHub(t *testing.T) {
	sink := diagnostics.NewSink("r2", nil)
	sink.Dump(3, false)
	sink.Dump(0, true)
}
