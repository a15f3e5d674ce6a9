// Package protocol describes the per-record handshake spoken by hex-record
// bootloaders.
//
// # Protocol Overview
//
// The host sends one Intel HEX record line at a time and waits for a single
// reply byte before sending the next:
//
//	Host:   :LLAAAATT[DD...]CC
//	Device: <ack byte>
//
// The expected reply depends on the record type and on the device. It is
// supplied as an AckTable. Any other byte is a negative acknowledgement and
// the host sends the same record again.
//
// # Ack Tables
//
// The default table expects ASCII ACK (0x06) for every record type:
//
//	table := protocol.DefaultAckTable()
//
// Device specific tables can be parsed from a compact string:
//
//	table, err := protocol.ParseAckTable("data=.,ext=0x06,eof=!")
//
// # Link Settings
//
// Devices are expected on a 115200 baud, 8N1 link without flow control,
// see DefaultBaudRate and DefaultReadTimeout.
package protocol
