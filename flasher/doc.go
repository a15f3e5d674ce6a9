// Package flasher delivers Intel HEX record sequences to a bootloader over a
// byte oriented link.
//
// # Overview
//
// A Session sends one record at a time and waits for the device to reply:
//   - Write the record line and flush the transport
//   - Read the reply byte, bounded by the transport read timeout
//   - Compare it with the acknowledgement expected for the record type
//   - On a match, move on to the next record
//   - Otherwise clear the input buffer, back off and send the same record again
//
// Record i+1 is never written before record i has been acknowledged.
//
// # Basic Usage
//
//	// User provides the link (see package serialport for a serial port)
//	port, err := serialport.Open(serialport.Config{Name: "/dev/ttyUSB0"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	seq, err := ihex.EncodeFile("firmware.bin", 0x08000000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session := flasher.New(port)
//	stats, err := session.Transmit(context.Background(), seq)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d records acknowledged\n", stats.Acked)
//
// # Configuration Options
//
//	session := flasher.New(port,
//	    flasher.WithAckTable(table),
//	    flasher.WithRetries(5),
//	    flasher.WithBackoff(100*time.Millisecond, 2*time.Second),
//	    flasher.WithLogger(myLogger),
//	    flasher.WithProgressCallback(progressFunc),
//	    flasher.WithEventCallback(eventFunc),
//	)
//
// # Error Handling
//
// Transmit stops at the first unrecoverable failure:
//   - TransportError: write, flush, read or clear failed; carries the number
//     of records acknowledged before the failure
//   - RetriesExhaustedError: the device kept rejecting a record or did not
//     answer; matches ErrNegativeAck or ErrAckTimeout with errors.Is
//   - context errors: the transfer was cancelled between two attempts
//
// Negative acknowledgements that are followed by a successful retry are not
// errors. They are reported through the event callback.
package flasher
