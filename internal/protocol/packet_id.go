package protocol

// Version754 is the protocol version number this server implements
// (Minecraft Java Edition 1.16.2-1.16.5), reported in the status response
// and checked against a client's Handshake.
const Version754 = 754

// Packet IDs below are pinned to protocol version 754 (Minecraft Java
// Edition 1.16.2-1.16.5). This protocol predates the Configuration state
// introduced in 762+; there are only four connection states here.
const (
	// Handshaking (C->S)
	C2SHandshake = 0x00

	// Status (C->S)
	C2SStatusRequest = 0x00
	C2SStatusPing    = 0x01

	// Status (S->C)
	S2CStatusResponse = 0x00
	S2CStatusPong     = 0x01

	// Login (C->S)
	C2SLoginStart          = 0x00
	C2SEncryptionResponse  = 0x01
	C2SLoginPluginResponse = 0x02

	// Login (S->C)
	S2CLoginDisconnect    = 0x00
	S2CEncryptionRequest  = 0x01
	S2CLoginSuccess       = 0x02
	S2CSetCompression     = 0x03
	S2CLoginPluginRequest = 0x04

	// Play (C->S)
	C2STeleportConfirm       = 0x00
	C2SChatMessage           = 0x03
	C2SClientStatus          = 0x04
	C2SClientCommand         = 0x04
	C2SClientSettings        = 0x05
	C2SPluginMessage         = 0x0A
	C2SUseEntity             = 0x0D
	C2SPlayKeepAlive         = 0x0F
	C2SPlayerPosition        = 0x12
	C2SPlayerPositionAndLook = 0x13
	C2SPlayerRotation        = 0x14
	C2SPlayerMovement        = 0x15
	C2SPlayerDigging         = 0x1A
	C2SEntityAction          = 0x1B
	C2SPlayerInput           = 0x1C
	C2SArmAnimation          = 0x2B
	C2SPlayerBlockPlacement  = 0x2E
	C2SUseItem               = 0x2E
	C2SHeldItemSlot          = 0x24

	// Play (S->C)
	S2CSpawnEntity              = 0x00
	S2CSpawnLivingEntity        = 0x02
	S2CSpawnPlayer              = 0x04
	S2CEntityAnimation          = 0x05
	S2CAcknowledgePlayerDigging = 0x07
	S2CBlockAction              = 0x0A
	S2CTileEntityData           = 0x09
	S2CBlockChange              = 0x0C
	S2CChatMessage              = 0x0E
	S2CPluginMessage            = 0x18
	S2CPlayDisconnect           = 0x1A
	S2CEntityStatus             = 0x1B
	S2CUnloadChunk              = 0x1D
	S2CMapChunk                 = 0x20
	S2CJoinGame                 = 0x24
	S2CEntityRelativeMove       = 0x28
	S2CEntityLookAndRelativeMove = 0x29
	S2CEntityLook               = 0x2A
	S2CPlayerInfo               = 0x32
	S2CPlayerPositionAndLook    = 0x34
	S2CDestroyEntities          = 0x36
	S2CRespawn                  = 0x3A
	S2CEntityHeadLook           = 0x3B
	S2CMultiBlockChange         = 0x3F
	S2CEntityMetadata           = 0x44
	S2CEntityVelocity           = 0x46
	S2CUpdateViewPosition       = 0x49
	S2CPlayKeepAlive            = 0x1F
)
