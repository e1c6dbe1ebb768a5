/*
Package streamio 字节流读写核心.

Reading Rules

	type Reader interface {
	    Read(p []byte) (Outcome, error)
	}

1. A Read() call will read up to len(p) into p, starting at p[0].
2. Every attempt reports exactly one Outcome:
   EndOfStream  nothing was read and nothing will ever be read again from this call site.
   Retry        nothing was read, the call must be reissued (e.g. an interrupted system call).
   Partial(n)   0 < n < len(p) bytes were read, more may or may not remain.
   Complete(n)  n == len(p) bytes were read, more may or may not remain.
3. A zero byte successful transfer is always EndOfStream, never Partial(0).
4. An error means no progress for this attempt. A source that has bytes and an error at the same time
   reports the bytes first and the error on the next call.
5. Retry is never completion. Every derived operation in this package reissues on Retry immediately,
   without sleeping or counting. If a backoff or a ceiling is wanted, the concrete source implements it.

Writing follows the same rules with Write(p []byte) (Outcome, error) plus a required Flush() error.

Derived operations (ReadExact, ReadToEnd, ReadToString, WriteAll, WriteFormatted) are free functions
built only on Read/Write. A type that has a faster way may implement ReaderToEnd, but callers always
go through the package level entry point.
*/
package streamio
