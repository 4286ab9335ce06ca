package schema

import (
	"fmt"
	"testing"
)

// BenchmarkPrimaryKeyName_Convention benchmarks convention resolution per policy
func BenchmarkPrimaryKeyName_Convention(b *testing.B) {
	for _, policy := range []NamingPolicy{PolicyNone, PolicyTableName, PolicyTableNameWithUnderscore} {
		b.Run(policy.String(), func(b *testing.B) {
			registry := NewRegistry()
			registry.Define("ProjectTask", WithPolicy(policy))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				registry.PrimaryKeyName("ProjectTask")
			}
		})
	}
}

// BenchmarkPrimaryKeyName_Constant benchmarks reads of a constant override
func BenchmarkPrimaryKeyName_Constant(b *testing.B) {
	project := NewEntityType("Project", NewHierarchy("Project", PolicyTableNameWithUnderscore), nil)
	project.SetPrimaryKeyOverride(KeyName("sysid"), nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		project.PrimaryKeyName()
	}
}

// BenchmarkPrimaryKeyName_Parallel benchmarks concurrent reads across 100 types
func BenchmarkPrimaryKeyName_Parallel(b *testing.B) {
	registry := NewRegistry()
	names := make([]string, 100)
	for i := range names {
		names[i] = fmt.Sprintf("Entity%d", i)
		registry.Define(names[i], WithPolicy(PolicyTableNameWithUnderscore))
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			registry.PrimaryKeyName(names[i%len(names)])
			i++
		}
	})
}
