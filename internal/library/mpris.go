package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"tractor/internal/logging"
)

const (
	mprisPrefix       = "org.mpris.MediaPlayer2."
	mprisPath         = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisRoot         = "org.mpris.MediaPlayer2"
	mprisTrackList    = "org.mpris.MediaPlayer2.TrackList"
	getTracksMetadata = mprisTrackList + ".GetTracksMetadata"
)

// ErrNoPlayer is returned when no matching MPRIS player is on the bus.
var ErrNoPlayer = errors.New("no mpris player found")

// MPRIS reads the track list of a running media player.
type MPRIS struct {
	conn    *dbus.Conn
	service string
	logger  *slog.Logger
}

// Connect opens the session bus and selects a player. player is the bus
// name suffix (e.g. "vlc"); empty selects the first player in name order.
func Connect(player string, logger *slog.Logger) (*MPRIS, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		conn.Close()
		return nil, fmt.Errorf("list dbus names: %w", err)
	}
	service, err := selectService(names, player)
	if err != nil {
		conn.Close()
		return nil, err
	}
	m := &MPRIS{
		conn:    conn,
		service: service,
		logger:  logging.NewComponentLogger(logger, "library"),
	}
	m.logger.Debug("mpris player selected", logging.String("service", service))
	return m, nil
}

// Service returns the selected bus name.
func (m *MPRIS) Service() string {
	return m.service
}

// Close releases the bus connection.
func (m *MPRIS) Close() error {
	return m.conn.Close()
}

// Entries returns the player's current track list in play order.
func (m *MPRIS) Entries(ctx context.Context) ([]Entry, error) {
	obj := m.conn.Object(m.service, mprisPath)

	hasList, err := obj.GetProperty(mprisRoot + ".HasTrackList")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", m.service, err)
	}
	if ok, _ := hasList.Value().(bool); !ok {
		return nil, fmt.Errorf("%s does not expose a track list", m.service)
	}

	tracksVariant, err := obj.GetProperty(mprisTrackList + ".Tracks")
	if err != nil {
		return nil, fmt.Errorf("read track list: %w", err)
	}
	ids, _ := tracksVariant.Value().([]dbus.ObjectPath)
	if len(ids) == 0 {
		return nil, nil
	}

	var metadata []map[string]dbus.Variant
	if err := obj.CallWithContext(ctx, getTracksMetadata, 0, ids).Store(&metadata); err != nil {
		return nil, fmt.Errorf("read track metadata: %w", err)
	}
	entries := make([]Entry, 0, len(metadata))
	for _, md := range metadata {
		entries = append(entries, EntryFromMetadata(md))
	}
	m.logger.Debug("track list read", logging.Int("entries", len(entries)))
	return entries, nil
}

func selectService(names []string, player string) (string, error) {
	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	slices.Sort(players)
	player = strings.TrimSpace(player)
	if player == "" {
		if len(players) == 0 {
			return "", ErrNoPlayer
		}
		return players[0], nil
	}
	want := player
	if !strings.HasPrefix(want, mprisPrefix) {
		want = mprisPrefix + player
	}
	for _, name := range players {
		// Players may append an instance suffix, e.g. "vlc.instance1234".
		if name == want || strings.HasPrefix(name, want+".") {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoPlayer, player)
}

// EntryFromMetadata converts an MPRIS metadata map into an Entry.
func EntryFromMetadata(md map[string]dbus.Variant) Entry {
	return Entry{
		Number:      intValue(md["xesam:trackNumber"]),
		Title:       stringValue(md["xesam:title"]),
		Artist:      stringValue(md["xesam:artist"]),
		AlbumArtist: stringValue(md["xesam:albumArtist"]),
		Album:       stringValue(md["xesam:album"]),
		Length:      time.Duration(int64Value(md["mpris:length"])) * time.Microsecond,
	}
}

func stringValue(v dbus.Variant) string {
	switch val := v.Value().(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	default:
		return ""
	}
}

func intValue(v dbus.Variant) int {
	return int(int64Value(v))
}

func int64Value(v dbus.Variant) int64 {
	switch val := v.Value().(type) {
	case int32:
		return int64(val)
	case int64:
		return val
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float64:
		return int64(val)
	case string:
		n, _ := strconv.ParseInt(val, 10, 64)
		return n
	default:
		return 0
	}
}
