/*
Dmrdemod connects to an rtl_tcp server, demodulates a DQPSK DMR channel and
logs the recovered dibit stream.

Command-line Flags:

	-server="127.0.0.1:1234"

Sets rtl_tcp server address or hostname and port to connect to.

	-centerfreq=851000000

Sets the center frequency of the rtl_tcp server.

	-symbolrate=4800

Sets the DMR symbol rate, in symbols per second.

	-samplerate=50000

Sets the channel sample rate the rtl_tcp server is configured to deliver,
in samples per second. Must exceed twice the symbol rate.

	-dibitcsv=""

Sets an optional path to write a CSV trace of every recovered dibit, one
row per dibit: index, two-bit value, ideal phase in radians. Disabled when
empty.

Log messages are written via logrus in plain text with full timestamps.
Startup failures (rtl_tcp connection, demodulator configuration) and
per-read errors are logged at Fatal and terminate the process; recovered
dibit counts are logged at Debug per block.
*/
package main
