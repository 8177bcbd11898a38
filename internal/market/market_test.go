package market

import "testing"

func TestConstructorValidation(t *testing.T) {
	game := Game{Home: "Boston Celtics", Away: "Miami Heat"}
	player := Player{Name: "Jayson Tatum", Team: "Boston Celtics"}

	tests := []struct {
		name    string
		build   func() (Record, error)
		wantErr bool
	}{
		{"moneyline home", func() (Record, error) {
			return NewMoneyline(game, PeriodFullGame, SideHome, BookDraftKings, -150, 130)
		}, false},
		{"moneyline zero price", func() (Record, error) {
			return NewMoneyline(game, PeriodFullGame, SideHome, BookDraftKings, 0, 130)
		}, true},
		{"moneyline over side", func() (Record, error) {
			return NewMoneyline(game, PeriodFullGame, SideOver, BookDraftKings, -150, 130)
		}, true},
		{"spread away", func() (Record, error) {
			return NewSpread(game, PeriodFullGame, SideAway, 3.5, BookFanDuel, -110, -110)
		}, false},
		{"spread under side", func() (Record, error) {
			return NewSpread(game, PeriodFullGame, SideUnder, 3.5, BookFanDuel, -110, -110)
		}, true},
		{"game total over", func() (Record, error) {
			return NewGameTotal(game, PeriodFullGame, SideOver, 221.5, BookBetMGM, -108, -112)
		}, false},
		{"game total home side", func() (Record, error) {
			return NewGameTotal(game, PeriodFullGame, SideHome, 221.5, BookBetMGM, -108, -112)
		}, true},
		{"team total", func() (Record, error) {
			return NewTeamTotal(game, PeriodFullGame, SideHome, SideOver, 112.5, BookCaesars, -115, -105)
		}, false},
		{"team total bad team side", func() (Record, error) {
			return NewTeamTotal(game, PeriodFullGame, SideOver, SideOver, 112.5, BookCaesars, -115, -105)
		}, true},
		{"player prop", func() (Record, error) {
			return NewPlayerProp(player, "points", PeriodFullGame, SideOver, 28.5, BookPrizePicks, -115, -105)
		}, false},
		{"player prop no stat", func() (Record, error) {
			return NewPlayerProp(player, "", PeriodFullGame, SideOver, 28.5, BookPrizePicks, -115, -105)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordShape(t *testing.T) {
	game := Game{Home: "Boston Celtics", Away: "Miami Heat"}

	ml, err := NewMoneyline(game, PeriodFullGame, SideAway, BookPinnacle, 130, -150)
	if err != nil {
		t.Fatalf("NewMoneyline: %v", err)
	}
	if ml.HasValue() {
		t.Error("moneylines carry no line value")
	}
	if ml.ValueOr(-1) != -1 {
		t.Error("ValueOr should fall through for moneylines")
	}

	sp, err := NewSpread(game, PeriodFullGame, SideHome, -3.5, BookPinnacle, -110, -110)
	if err != nil {
		t.Fatalf("NewSpread: %v", err)
	}
	if !sp.HasValue() || sp.ValueOr(0) != -3.5 {
		t.Errorf("spread value = %v, want -3.5", sp.ValueOr(0))
	}

	tt, err := NewTeamTotal(game, PeriodFullGame, SideAway, SideUnder, 110.5, BookPinnacle, -110, -110)
	if err != nil {
		t.Fatalf("NewTeamTotal: %v", err)
	}
	if tt.TeamSide != SideAway || tt.Side != SideUnder {
		t.Errorf("team total sides = %s/%s, want away/under", tt.TeamSide, tt.Side)
	}
}

func TestSymmetric(t *testing.T) {
	if !KindSpread.Symmetric() {
		t.Error("spreads mirror the value across sides")
	}
	for _, k := range []Kind{KindMoneyline, KindGameTotal, KindTeamTotal, KindPlayerProp} {
		if k.Symmetric() {
			t.Errorf("%s should not be symmetric", k)
		}
	}
}

func TestComplement(t *testing.T) {
	pairs := map[Side]Side{
		SideHome:  SideAway,
		SideAway:  SideHome,
		SideOver:  SideUnder,
		SideUnder: SideOver,
	}
	for s, want := range pairs {
		if got := s.Complement(); got != want {
			t.Errorf("%s.Complement() = %s, want %s", s, got, want)
		}
	}
}

func TestSubject(t *testing.T) {
	game := Game{Home: "Boston Celtics", Away: "Miami Heat"}
	ml, _ := NewMoneyline(game, PeriodFullGame, SideHome, BookDraftKings, -150, 130)
	if ml.Subject() != "Miami Heat@Boston Celtics" {
		t.Errorf("Subject = %q", ml.Subject())
	}

	prop, _ := NewPlayerProp(Player{Name: "Jayson Tatum"}, "points", PeriodFullGame, SideOver, 28.5, BookUnderdog, 100, -120)
	if prop.Subject() != "Jayson Tatum (points)" {
		t.Errorf("Subject = %q", prop.Subject())
	}
}
