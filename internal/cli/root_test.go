package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/rpathgen/internal/cli"
	"github.com/MacroPower/rpathgen/pkg/rpath"
)

func TestRootCmd(t *testing.T) {
	tcs := map[string]struct {
		want string
		args []string
	}{
		"identity": {
			args: []string{"/build/bin", "/build/bin"},
			want: "$ORIGIN/.\n",
		},
		"sibling directory": {
			args: []string{"/build/bin", "/build/lib"},
			want: "$ORIGIN/../lib\n",
		},
		"nested directory": {
			args: []string{"/build", "/build/lib/plugins"},
			want: "$ORIGIN/lib/plugins\n",
		},
		"multiple dependencies": {
			args: []string{"/build/bin", "/build/lib", "/build/lib2"},
			want: "$ORIGIN/../lib:$ORIGIN/../lib2\n",
		},
		"order preserved": {
			args: []string{"/build/bin", "/build/lib2", "/build/lib"},
			want: "$ORIGIN/../lib2:$ORIGIN/../lib\n",
		},
		"no dependencies": {
			args: []string{"/build/bin"},
			want: "\n",
		},
		"custom token": {
			args: []string{"--token", "@loader_path", "/build/bin", "/build/lib"},
			want: "@loader_path/../lib\n",
		},
		"relative to workdir": {
			args: []string{"--workdir", "/work", "bin", "lib", "/work/bin/plugins"},
			want: "$ORIGIN/../lib:$ORIGIN/plugins\n",
		},
		"dash prefixed dependency": {
			args: []string{"--workdir", "/build", "--", "bin", "-lib"},
			want: "$ORIGIN/../-lib\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			rootCmd := cli.NewRootCmd("test_root", "", "")
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			rootCmd.SetArgs(tc.args)
			rootCmd.SetOut(stdout)
			rootCmd.SetErr(stderr)

			err := rootCmd.Execute()
			require.NoError(t, err)
			assert.Equal(t, tc.want, stdout.String())
			assert.Empty(t, stderr.String(), "stderr should be empty")
		})
	}
}

func TestRootCmdErrors(t *testing.T) {
	tcs := map[string]struct {
		wantErr error
		args    []string
	}{
		"missing origin": {
			args:    []string{},
			wantErr: rpath.ErrMissingOrigin,
		},
		"missing origin with flags": {
			args:    []string{"--token", "@loader_path"},
			wantErr: rpath.ErrMissingOrigin,
		},
		"empty dependency": {
			args:    []string{"/build/bin", "/build/lib", ""},
			wantErr: rpath.ErrEmptyPath,
		},
		"unknown output format": {
			args:    []string{"-o", "xml", "/build/bin", "/build/lib"},
			wantErr: rpath.ErrUnknownFormat,
		},
		"empty token": {
			args:    []string{"--token", "", "/build/bin", "/build/lib"},
			wantErr: rpath.ErrInvalidOption,
		},
		"invalid log level": {
			args:    []string{"--log_level", "invalid", "/build/bin"},
			wantErr: cli.ErrLogHandlerFailed,
		},
		"invalid log format": {
			args:    []string{"--log_format", "invalid", "/build/bin"},
			wantErr: cli.ErrLogHandlerFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			rootCmd := cli.NewRootCmd("test_root_errors", "", "")
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			rootCmd.SetArgs(tc.args)
			rootCmd.SetOut(stdout)
			rootCmd.SetErr(stderr)

			err := rootCmd.Execute()
			require.Error(t, err)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, stdout.String(), "stdout should be empty")
		})
	}
}

func TestRootCmdMissingOriginIsInvalidArgument(t *testing.T) {
	rootCmd := cli.NewRootCmd("test_missing_origin", "", "")
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	require.ErrorIs(t, err, cli.ErrInvalidArgument)
	require.ErrorIs(t, err, rpath.ErrMissingOrigin)
}

func TestRootCmdOutputFormats(t *testing.T) {
	tcs := map[string]struct {
		check func(t *testing.T, out string)
		args  []string
	}{
		"json": {
			args: []string{"--output", "json", "/build/bin", "/build/lib"},
			check: func(t *testing.T, out string) {
				t.Helper()

				require.JSONEq(t, `{
					"origin": "/build/bin",
					"token": "$ORIGIN",
					"rpath": "$ORIGIN/../lib",
					"entries": [
						{"path": "/build/lib", "relative": "../lib", "value": "$ORIGIN/../lib"}
					]
				}`, out)
			},
		},
		"yaml": {
			args: []string{"-o", "yaml", "/build/bin", "/build/lib"},
			check: func(t *testing.T, out string) {
				t.Helper()

				require.YAMLEq(t, `
origin: /build/bin
token: $ORIGIN
rpath: $ORIGIN/../lib
entries:
  - path: /build/lib
    relative: ../lib
    value: $ORIGIN/../lib
`, out)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			rootCmd := cli.NewRootCmd("test_output", "", "")
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			rootCmd.SetArgs(tc.args)
			rootCmd.SetOut(stdout)
			rootCmd.SetErr(stderr)

			err := rootCmd.Execute()
			require.NoError(t, err)
			assert.Empty(t, stderr.String(), "stderr should be empty")
			tc.check(t, stdout.String())
		})
	}
}

func TestRootCmdArgs(t *testing.T) {
	tcs := map[string]struct {
		logLevel  string
		logFormat string
	}{
		"default config": {
			logLevel:  "warn",
			logFormat: "text",
		},
		"json format": {
			logLevel:  "info",
			logFormat: "json",
		},
		"logfmt format": {
			logLevel:  "error",
			logFormat: "logfmt",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			rootCmd := cli.NewRootCmd("test_logger", "", "")
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			rootCmd.SetArgs([]string{
				"--log_level", tc.logLevel,
				"--log_format", tc.logFormat,
				"/build/bin", "/build/lib",
			})
			rootCmd.SetOut(stdout)
			rootCmd.SetErr(stderr)

			err := rootCmd.Execute()
			require.NoError(t, err)
			assert.Equal(t, "$ORIGIN/../lib\n", stdout.String())
		})
	}
}

func TestRootCmdDebugLogging(t *testing.T) {
	rootCmd := cli.NewRootCmd("test_debug", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	rootCmd.SetArgs([]string{"--log_level", "debug", "/build/bin", "/build/lib"})
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, "$ORIGIN/../lib\n", stdout.String(), "logs should not reach stdout")
	assert.Contains(t, stderr.String(), "computed rpath entry")
	assert.Contains(t, stderr.String(), "operation_name=compute")
}

func BenchmarkRootCmd(b *testing.B) {
	for b.Loop() {
		tc := cli.NewRootCmd("bench_root", "", "")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		tc.SetArgs([]string{"/build/bin", "/build/lib", "/build/lib2"})
		tc.SetOut(stdout)
		tc.SetErr(stderr)

		err := tc.Execute()
		require.NoError(b, err)
		assert.Empty(b, stderr.String(), "stderr should be empty")
	}
}
