// Package registry is the static packet descriptor table indexed by
// (state, direction, id). Identifiers are local to a (state, direction)
// pair and need not be globally unique across the whole protocol.
package registry

import (
	"fmt"

	"github.com/voxborne/mcserver/internal/protocol"
)

// Direction distinguishes who sent a packet.
type Direction int

const (
	Serverbound Direction = iota
	Clientbound
)

// Key identifies a packet descriptor slot.
type Key struct {
	State     protocol.State
	Direction Direction
	ID        int32
}

// Descriptor names a known packet for logging and diagnostics. Decoding
// itself stays in internal/protocol's per-packet Parse functions; the
// registry's job is membership, not marshaling.
type Descriptor struct {
	Name string
}

// Table is a static (state, direction, id) -> Descriptor lookup.
type Table struct {
	entries map[Key]Descriptor
}

func NewTable() *Table {
	return &Table{entries: make(map[Key]Descriptor)}
}

func (t *Table) Register(state protocol.State, dir Direction, id int32, name string) {
	t.entries[Key{State: state, Direction: dir, ID: id}] = Descriptor{Name: name}
}

// Lookup returns the descriptor for a (state, direction, id) triple. ok is
// false for an id unknown in that state/direction pair — callers must treat
// that as non-fatal per the frame-dispatch contract, logging and skipping
// the frame rather than terminating the connection.
func (t *Table) Lookup(state protocol.State, dir Direction, id int32) (Descriptor, bool) {
	d, ok := t.entries[Key{State: state, Direction: dir, ID: id}]
	return d, ok
}

func (k Key) String() string {
	dir := "S->C"
	if k.Direction == Serverbound {
		dir = "C->S"
	}
	return fmt.Sprintf("%s %s 0x%02X", dir, stateName(k.State), k.ID)
}

func stateName(s protocol.State) string {
	switch s {
	case protocol.Handshaking:
		return "Handshaking"
	case protocol.Status:
		return "Status"
	case protocol.Login:
		return "Login"
	case protocol.Play:
		return "Play"
	default:
		return "Unknown"
	}
}

// Default builds the packet descriptor table for protocol 754.
func Default() *Table {
	t := NewTable()

	t.Register(protocol.Handshaking, Serverbound, protocol.C2SHandshake, "Handshake")

	t.Register(protocol.Status, Serverbound, protocol.C2SStatusRequest, "StatusRequest")
	t.Register(protocol.Status, Serverbound, protocol.C2SStatusPing, "StatusPing")
	t.Register(protocol.Status, Clientbound, protocol.S2CStatusResponse, "StatusResponse")
	t.Register(protocol.Status, Clientbound, protocol.S2CStatusPong, "StatusPong")

	t.Register(protocol.Login, Serverbound, protocol.C2SLoginStart, "LoginStart")
	t.Register(protocol.Login, Serverbound, protocol.C2SEncryptionResponse, "EncryptionResponse")
	t.Register(protocol.Login, Serverbound, protocol.C2SLoginPluginResponse, "LoginPluginResponse")
	t.Register(protocol.Login, Clientbound, protocol.S2CLoginDisconnect, "LoginDisconnect")
	t.Register(protocol.Login, Clientbound, protocol.S2CEncryptionRequest, "EncryptionRequest")
	t.Register(protocol.Login, Clientbound, protocol.S2CLoginSuccess, "LoginSuccess")
	t.Register(protocol.Login, Clientbound, protocol.S2CSetCompression, "SetCompression")
	t.Register(protocol.Login, Clientbound, protocol.S2CLoginPluginRequest, "LoginPluginRequest")

	t.Register(protocol.Play, Serverbound, protocol.C2STeleportConfirm, "TeleportConfirm")
	t.Register(protocol.Play, Serverbound, protocol.C2SChatMessage, "ChatMessage")
	t.Register(protocol.Play, Serverbound, protocol.C2SClientStatus, "ClientStatus")
	t.Register(protocol.Play, Serverbound, protocol.C2SClientSettings, "ClientSettings")
	t.Register(protocol.Play, Serverbound, protocol.C2SPluginMessage, "PluginMessage")
	t.Register(protocol.Play, Serverbound, protocol.C2SUseEntity, "UseEntity")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayKeepAlive, "KeepAlive")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayerPosition, "PlayerPosition")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayerPositionAndLook, "PlayerPositionAndLook")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayerRotation, "PlayerRotation")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayerMovement, "PlayerMovement")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayerDigging, "PlayerDigging")
	t.Register(protocol.Play, Serverbound, protocol.C2SEntityAction, "EntityAction")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayerInput, "PlayerInput")
	t.Register(protocol.Play, Serverbound, protocol.C2SArmAnimation, "ArmAnimation")
	t.Register(protocol.Play, Serverbound, protocol.C2SPlayerBlockPlacement, "PlayerBlockPlacement")
	t.Register(protocol.Play, Serverbound, protocol.C2SHeldItemSlot, "HeldItemSlot")

	t.Register(protocol.Play, Clientbound, protocol.S2CSpawnEntity, "SpawnEntity")
	t.Register(protocol.Play, Clientbound, protocol.S2CSpawnLivingEntity, "SpawnLivingEntity")
	t.Register(protocol.Play, Clientbound, protocol.S2CSpawnPlayer, "SpawnPlayer")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityAnimation, "EntityAnimation")
	t.Register(protocol.Play, Clientbound, protocol.S2CAcknowledgePlayerDigging, "AcknowledgePlayerDigging")
	t.Register(protocol.Play, Clientbound, protocol.S2CBlockAction, "BlockAction")
	t.Register(protocol.Play, Clientbound, protocol.S2CTileEntityData, "TileEntityData")
	t.Register(protocol.Play, Clientbound, protocol.S2CBlockChange, "BlockChange")
	t.Register(protocol.Play, Clientbound, protocol.S2CChatMessage, "ChatMessage")
	t.Register(protocol.Play, Clientbound, protocol.S2CPluginMessage, "PluginMessage")
	t.Register(protocol.Play, Clientbound, protocol.S2CPlayDisconnect, "PlayDisconnect")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityStatus, "EntityStatus")
	t.Register(protocol.Play, Clientbound, protocol.S2CUnloadChunk, "UnloadChunk")
	t.Register(protocol.Play, Clientbound, protocol.S2CMapChunk, "MapChunk")
	t.Register(protocol.Play, Clientbound, protocol.S2CJoinGame, "JoinGame")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityRelativeMove, "EntityRelativeMove")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityLookAndRelativeMove, "EntityLookAndRelativeMove")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityLook, "EntityLook")
	t.Register(protocol.Play, Clientbound, protocol.S2CPlayerInfo, "PlayerInfo")
	t.Register(protocol.Play, Clientbound, protocol.S2CPlayerPositionAndLook, "PlayerPositionAndLook")
	t.Register(protocol.Play, Clientbound, protocol.S2CDestroyEntities, "DestroyEntities")
	t.Register(protocol.Play, Clientbound, protocol.S2CRespawn, "Respawn")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityHeadLook, "EntityHeadLook")
	t.Register(protocol.Play, Clientbound, protocol.S2CMultiBlockChange, "MultiBlockChange")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityMetadata, "EntityMetadata")
	t.Register(protocol.Play, Clientbound, protocol.S2CEntityVelocity, "EntityVelocity")
	t.Register(protocol.Play, Clientbound, protocol.S2CUpdateViewPosition, "UpdateViewPosition")
	t.Register(protocol.Play, Clientbound, protocol.S2CPlayKeepAlive, "KeepAlive")

	return t
}
