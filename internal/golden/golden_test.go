package golden

import "testing"

func TestArithmeticOutput(t *testing.T) {
	Run(t, "输出(1 + 2)")
}

func TestFibonacci(t *testing.T) {
	Run(t, `
函数 fib(n) {
	如果 (n < 2) { 返回 n }
	返回 fib(n - 1) + fib(n - 2)
}
输出(fib(10))
`)
}

func TestForLoopOverRange(t *testing.T) {
	Run(t, "对于 i 在 范围(0, 3) { 输出(i) }")
}

func TestStringConcatenation(t *testing.T) {
	Run(t, `输出("你好" + "，世界")`)
}

func TestArrayAndSort(t *testing.T) {
	Run(t, `输出(排序([3, 1, 2]))`)
}

func TestDivisionByZeroErrorSnapshot(t *testing.T) {
	Run(t, "1 / 0")
}
