package spl

import (
	"reflect"
	"testing"
)

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "empty query",
			query: "",
			want:  []string{},
		},
		{
			name:  "no fields",
			query: "| tstats count",
			want:  []string{},
		},
		{
			name:  "comparison operators",
			query: "src_ip=10.0.0.1 bytes_out>1000 dest_port<=443",
			want:  []string{"bytes_out", "dest_port", "src_ip"},
		},
		{
			name:  "by clause splits on commas",
			query: "| stats count by src_ip, dest_ip, user",
			want:  []string{"dest_ip", "src_ip", "user"},
		},
		{
			name:  "by clause stops at pipe",
			query: "| stats count by src_ip | table src_ip",
			want:  []string{"src_ip"},
		},
		{
			name:  "rex field",
			query: "| rex field=raw_payload \"(?<code>\\d+)\"",
			want:  []string{"raw_payload"},
		},
		{
			name:  "aggregation calls",
			query: "| stats min(duration) max(bytes) dc(user)",
			want:  []string{"bytes", "duration", "user"},
		},
		{
			name:  "macros are stripped before matching",
			query: "`security_content_summariesonly` src_ip=10.0.0.1 `my_macro(arg=1)`",
			want:  []string{"src_ip"},
		},
		{
			name:  "denylisted calls are stripped",
			query: "security_content_ctime(firstTime) min(duration)",
			want:  []string{"duration"},
		},
		{
			name:  "string literals never contribute fields",
			query: `search="index=internal" src_ip=10.0.0.1`,
			want:  []string{"search", "src_ip"},
		},
		{
			name:  "stopwords dropped case insensitively",
			query: "FROM datamodel=Network_Traffic field=x src_ip=1",
			want:  []string{"src_ip"},
		},
		{
			name:  "data model namespace prefix dropped",
			query: "all_traffic.src=10.0.0.1 by all_traffic.dest, user",
			want:  []string{"user"},
		},
		{
			name:  "dedup across extraction passes",
			query: "src_ip=1 | stats count by src_ip | stats dc(src_ip)",
			want:  []string{"src_ip"},
		},
		{
			name: "representative tstats query",
			query: "| tstats `security_content_summariesonly` count min(_time) as firstTime " +
				"from datamodel=Network_Traffic where all_traffic.dest_port=22 " +
				"by all_traffic.src, all_traffic.dest, user | `drop_dm_object_name(\"all_traffic\")`",
			want: []string{"_time", "user"},
		},
		{
			name:  "malformed input does not panic",
			query: "(((= = = |||| `unclosed \"unclosed",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFields(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFields(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
