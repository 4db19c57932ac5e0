// Package digest hashes files and verifies them against expected digests.
//
// Expected digests are read in bare hex, coreutils ("HEX  NAME") or BSD
// ("SHA256 (NAME) = HEX") form. A tree can be verified against per-file
// sidecars named FILE.<algorithm>, which [Checker.VerifyTree] can also
// create for files that have none.
package digest
